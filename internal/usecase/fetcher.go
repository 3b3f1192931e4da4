package usecase

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/sync/errgroup"

	"mis-dashboard/internal/domain"
)

var reportDatePattern = regexp.MustCompile(`^\d{8}$`)

// Fetcher reads the four source datasets for a single report date.
type Fetcher struct {
	reader    DatasetReader
	dateField string
}

// NewFetcher creates a fetcher that filters every read on dateField.
func NewFetcher(reader DatasetReader, dateField string) *Fetcher {
	if dateField == "" {
		dateField = domain.FieldPostDate
	}
	return &Fetcher{reader: reader, dateField: dateField}
}

// FetchAll issues the four reads concurrently and returns once all of them
// have completed. If any read fails the other results are discarded and the
// first failure is returned as a *domain.FetchError.
func (f *Fetcher) FetchAll(ctx context.Context, date string) (*domain.Sources, error) {
	if !reportDatePattern.MatchString(date) {
		return nil, &domain.ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("expected YYYYMMDD, got %q", date),
			Err:     domain.ErrInvalidDate,
		}
	}

	filters := []domain.Filter{{Field: f.dateField, Value: date}}
	results := make([][]domain.RawRecord, len(domain.SourceDatasets))

	g, gctx := errgroup.WithContext(ctx)
	for i, dataset := range domain.SourceDatasets {
		g.Go(func() error {
			records, err := f.reader.Read(gctx, dataset, filters)
			if err != nil {
				return &domain.FetchError{Dataset: dataset, Err: err}
			}
			results[i] = nonNil(records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Sources{
		Dtm:      results[0],
		Combine:  results[1],
		Dispatch: results[2],
		Stock:    results[3],
	}, nil
}

func nonNil(records []domain.RawRecord) []domain.RawRecord {
	if records == nil {
		return []domain.RawRecord{}
	}
	return records
}
