package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDate is returned when a report is triggered without a date.
	ErrNoDate = errors.New("no date selected")

	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrFetch marks a failed report cycle fetch.
	ErrFetch = errors.New("fetch failed")

	// ErrUnknownDataset is returned for dataset names outside the published set.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrDatasetUnavailable is returned when a backing dataset is not
	// configured or cannot be reached.
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)

// ValidationError reports missing or malformed user input.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FetchError wraps the failure of a single dataset read. One FetchError
// fails the whole cycle.
type FetchError struct {
	Dataset Dataset
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not read %s dataset: %v", e.Dataset, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// StatusError is a non-success response from a remote dataset service.
type StatusError struct {
	Dataset    Dataset
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dataset %s returned status %d: %s", e.Dataset, e.StatusCode, e.Body)
}
