package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mis-dashboard/internal/domain"
)

// CSVDatasetReader implements the DatasetReader interface over a directory
// holding one CSV file per dataset (dtm.csv, combine.csv, ...). The first
// row of each file names the fields.
type CSVDatasetReader struct {
	dir string
}

// NewCSVDatasetReader creates a reader rooted at dir. The directory is not
// checked until a dataset is read.
func NewCSVDatasetReader(dir string) *CSVDatasetReader {
	return &CSVDatasetReader{dir: dir}
}

// Path returns the file backing a dataset.
func (r *CSVDatasetReader) Path(dataset domain.Dataset) string {
	return filepath.Join(r.dir, string(dataset)+".csv")
}

// Read parses the dataset's CSV file and returns the rows matching every filter.
func (r *CSVDatasetReader) Read(ctx context.Context, dataset domain.Dataset, filters []domain.Filter) ([]domain.RawRecord, error) {
	if !dataset.IsSource() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, dataset)
	}

	path := r.Path(dataset)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s has no file at %s", domain.ErrDatasetUnavailable, dataset, path)
		}
		return nil, fmt.Errorf("failed to open dataset file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	records := make([]domain.RawRecord, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		rec := make(domain.RawRecord, len(header))
		for i, field := range header {
			// Short rows leave trailing fields missing.
			if i < len(row) {
				rec[field] = row[i]
			}
		}
		if matchesAll(rec, filters) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func matchesAll(rec domain.RawRecord, filters []domain.Filter) bool {
	for _, f := range filters {
		if !f.Matches(rec) {
			return false
		}
	}
	return true
}
