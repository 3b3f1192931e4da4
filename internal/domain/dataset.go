package domain

import (
	"fmt"
	"strings"
)

// Dataset names a published destination. The first four are also the
// source datasets read for each report date.
type Dataset string

const (
	DatasetDtm      Dataset = "dtm"
	DatasetCombine  Dataset = "combine"
	DatasetDispatch Dataset = "dispatch"
	DatasetStock    Dataset = "stock"
	DatasetItem     Dataset = "item"
)

// SourceDatasets are read concurrently on every report cycle.
var SourceDatasets = []Dataset{DatasetDtm, DatasetCombine, DatasetDispatch, DatasetStock}

// PublishedDatasets are the destinations exposed to consumers.
var PublishedDatasets = []Dataset{DatasetDtm, DatasetCombine, DatasetDispatch, DatasetStock, DatasetItem}

// ParseDataset resolves a destination name, case-insensitively.
func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PublishedDatasets {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDataset, s)
}

// IsSource reports whether the dataset is one of the four fetched sources.
func (d Dataset) IsSource() bool {
	for _, s := range SourceDatasets {
		if d == s {
			return true
		}
	}
	return false
}
