package domain

import "time"

// Report is everything one report cycle publishes. A new cycle replaces the
// whole value; it is never patched in place.
type Report struct {
	RunID       string      `json:"run_id"`
	Date        string      `json:"date"`
	GeneratedAt time.Time   `json:"generated_at"`
	Dtm         []RawRecord `json:"dtm"`
	Combine     []RawRecord `json:"combine"`
	Dispatch    []RawRecord `json:"dispatch"`
	Stock       []RawRecord `json:"stock"`
	Items       []ItemRow   `json:"item"`
}

// EmptyReport returns a report whose destinations are all empty, non-nil
// sequences.
func EmptyReport() *Report {
	return &Report{
		Dtm:      []RawRecord{},
		Combine:  []RawRecord{},
		Dispatch: []RawRecord{},
		Stock:    []RawRecord{},
		Items:    []ItemRow{},
	}
}

// Dataset returns the published destination with the given name.
func (r *Report) Dataset(d Dataset) (any, bool) {
	switch d {
	case DatasetDtm:
		return r.Dtm, true
	case DatasetCombine:
		return r.Combine, true
	case DatasetDispatch:
		return r.Dispatch, true
	case DatasetStock:
		return r.Stock, true
	case DatasetItem:
		return r.Items, true
	}
	return nil, false
}
