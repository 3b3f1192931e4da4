package usecase

import (
	"sync/atomic"

	"mis-dashboard/internal/domain"
)

// ResultStore holds the last published report. Publishing swaps the whole
// report, so readers between cycles always see one complete cycle.
type ResultStore struct {
	current atomic.Pointer[domain.Report]
}

// NewResultStore creates a store whose destinations start out empty.
func NewResultStore() *ResultStore {
	s := &ResultStore{}
	s.current.Store(domain.EmptyReport())
	return s
}

// Publish replaces the stored report.
func (s *ResultStore) Publish(r *domain.Report) {
	s.current.Store(r)
}

// Snapshot returns the current report. Callers must treat it as read-only.
func (s *ResultStore) Snapshot() *domain.Report {
	return s.current.Load()
}

// Dataset returns one published destination from the current report.
func (s *ResultStore) Dataset(d domain.Dataset) (any, error) {
	v, ok := s.Snapshot().Dataset(d)
	if !ok {
		return nil, domain.ErrUnknownDataset
	}
	return v, nil
}
