package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mis-dashboard/internal/domain"
)

// DefaultEntitySets maps each source dataset to its OData entity set.
var DefaultEntitySets = map[domain.Dataset]string{
	domain.DatasetDtm:      "es_dtmset",
	domain.DatasetCombine:  "es_combineset",
	domain.DatasetDispatch: "es_dm_dispset",
	domain.DatasetStock:    "es_stockset",
}

// DefaultHTTPTimeout bounds a single entity set read.
const DefaultHTTPTimeout = 30 * time.Second

const maxErrorBody = 512

// ODataReader implements the DatasetReader interface against an OData
// service. Each read is a single GET without batching.
type ODataReader struct {
	baseURL    string
	entitySets map[domain.Dataset]string
	http       *http.Client
}

// ODataOption configures an ODataReader.
type ODataOption func(*ODataReader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ODataOption {
	return func(r *ODataReader) { r.http = c }
}

// WithEntitySets overrides entity set names per dataset.
func WithEntitySets(sets map[domain.Dataset]string) ODataOption {
	return func(r *ODataReader) {
		for ds, name := range sets {
			if name != "" {
				r.entitySets[ds] = name
			}
		}
	}
}

// NewODataReader creates a reader for the service rooted at baseURL.
func NewODataReader(baseURL string, opts ...ODataOption) *ODataReader {
	r := &ODataReader{
		baseURL:    strings.TrimRight(baseURL, "/"),
		entitySets: make(map[domain.Dataset]string, len(DefaultEntitySets)),
		http:       &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for ds, name := range DefaultEntitySets {
		r.entitySets[ds] = name
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read fetches the entity set behind dataset with the filters ANDed together.
func (r *ODataReader) Read(ctx context.Context, dataset domain.Dataset, filters []domain.Filter) ([]domain.RawRecord, error) {
	if r.baseURL == "" {
		return nil, fmt.Errorf("%w: no service URL configured", domain.ErrDatasetUnavailable)
	}
	set, ok := r.entitySets[dataset]
	if !ok {
		return nil, fmt.Errorf("%w: no entity set for %s", domain.ErrDatasetUnavailable, dataset)
	}

	endpoint := r.baseURL + "/" + set + "?" + buildQuery(filters)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", set, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", set, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body of %s: %w", set, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &domain.StatusError{Dataset: dataset, StatusCode: resp.StatusCode, Body: string(body)}
	}

	records, err := decodeResults(body)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s response: %w", set, err)
	}
	return records, nil
}

// buildQuery renders filters as an OData $filter expression. System query
// option names stay literal and spaces are sent as %20; some gateways read
// '+' as a literal plus.
func buildQuery(filters []domain.Filter) string {
	q := "$format=json"
	if len(filters) == 0 {
		return q
	}

	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = fmt.Sprintf("%s eq '%s'", f.Field, strings.ReplaceAll(f.Value, "'", "''"))
	}
	return q + "&$filter=" + queryEscape(strings.Join(parts, " and "))
}

func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// decodeResults accepts the V2 envelope {"d":{"results":[...]}}, the older
// {"d":[...]} form and the V4 {"value":[...]} form.
func decodeResults(body []byte) ([]domain.RawRecord, error) {
	var envelope struct {
		D     json.RawMessage    `json:"d"`
		Value []domain.RawRecord `json:"value"`
	}
	if err := unmarshalNumbers(body, &envelope); err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	switch {
	case len(envelope.D) > 0 && envelope.D[0] == '[':
		if err := unmarshalNumbers(envelope.D, &records); err != nil {
			return nil, err
		}
	case len(envelope.D) > 0:
		var inner struct {
			Results []domain.RawRecord `json:"results"`
		}
		if err := unmarshalNumbers(envelope.D, &inner); err != nil {
			return nil, err
		}
		records = inner.Results
	default:
		records = envelope.Value
	}

	if records == nil {
		records = []domain.RawRecord{}
	}
	for _, rec := range records {
		delete(rec, "__metadata")
	}
	return records, nil
}

func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
