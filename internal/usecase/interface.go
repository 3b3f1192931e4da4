package usecase

import (
	"context"

	"mis-dashboard/internal/domain"
)

// DatasetReader defines the narrow read interface onto the backing datasets.
// The usecase layer depends on this interface, not on a concrete transport.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type DatasetReader interface {
	Read(ctx context.Context, dataset domain.Dataset, filters []domain.Filter) ([]domain.RawRecord, error)
}

// Notifier receives the user-visible outcome of a report cycle. Exactly one
// of Validation, Success or Failure is called per run, followed by Done.
type Notifier interface {
	Validation(message string)
	Success(message string)
	Failure(message string, cause error)
	Done()
}
