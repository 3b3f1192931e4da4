package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mis-dashboard/internal/domain"
)

// User-facing outcome messages.
const (
	MsgNoDate  = "Please select a date"
	MsgSuccess = "Data Loaded Successfully"
	MsgFailure = "Error loading data"
)

// ReportDateLayout is the textual date form the datasets are filtered on.
const ReportDateLayout = "20060102"

// Dashboard orchestrates one report cycle: fetch, reconcile, publish.
type Dashboard struct {
	fetcher *Fetcher
	store   *ResultStore
	logger  zerolog.Logger
	now     func() time.Time
}

// NewDashboard creates a new instance of the orchestrator.
func NewDashboard(fetcher *Fetcher, store *ResultStore, logger zerolog.Logger) *Dashboard {
	return &Dashboard{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Store returns the store the dashboard publishes into.
func (d *Dashboard) Store() *ResultStore {
	return d.store
}

// RunReport executes a report cycle for date. The outcome is reported to n
// exactly once, followed by n.Done. On failure nothing is published and the
// previous report stays visible. The returned error carries the cause.
func (d *Dashboard) RunReport(ctx context.Context, date time.Time, n Notifier) error {
	defer n.Done()

	if date.IsZero() {
		n.Validation(MsgNoDate)
		return &domain.ValidationError{Field: "date", Message: MsgNoDate, Err: domain.ErrNoDate}
	}

	runID := uuid.NewString()
	reportDate := date.Format(ReportDateLayout)
	logger := d.logger.With().Str("run_id", runID).Str("date", reportDate).Logger()

	logger.Info().Msg("report execution started")
	defer func() { logger.Info().Msg("report execution finished") }()

	sources, err := d.fetcher.FetchAll(ctx, reportDate)
	if err != nil {
		logger.Error().Err(err).Msg("fetch failed")
		n.Failure(MsgFailure, err)
		return fmt.Errorf("could not fetch datasets: %w", err)
	}

	logger.Debug().
		Int("dtm", len(sources.Dtm)).
		Int("combine", len(sources.Combine)).
		Int("dispatch", len(sources.Dispatch)).
		Int("stock", len(sources.Stock)).
		Msg("datasets fetched")

	report := &domain.Report{
		RunID:       runID,
		Date:        reportDate,
		GeneratedAt: d.now().UTC(),
		Dtm:         NumberRows(sources.Dtm),
		Combine:     sources.Combine,
		Dispatch:    sources.Dispatch,
		Stock:       sources.Stock,
		Items:       BuildItems(sources.Combine, sources.Dispatch, sources.Stock),
	}
	d.store.Publish(report)

	logger.Debug().Int("items", len(report.Items)).Msg("item view built")
	n.Success(MsgSuccess)
	return nil
}

// ParseReportDate accepts YYYY-MM-DD or YYYYMMDD. An empty string yields the
// zero time, which RunReport reports as a missing date.
func ParseReportDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.DateOnly, ReportDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.ValidationError{
		Field:   "date",
		Message: fmt.Sprintf("%q is not a date (want YYYY-MM-DD or YYYYMMDD)", s),
		Err:     domain.ErrInvalidDate,
	}
}
