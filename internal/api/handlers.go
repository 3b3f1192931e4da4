package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"mis-dashboard/internal/domain"
	"mis-dashboard/internal/usecase"
)

// Handler serves the result store and the report trigger.
type Handler struct {
	dashboard *usecase.Dashboard
	logger    zerolog.Logger

	// running serializes report cycles; the orchestrator does not.
	running sync.Mutex
}

// NewHandler creates a handler around dashboard.
func NewHandler(dashboard *usecase.Dashboard, logger zerolog.Logger) *Handler {
	return &Handler{dashboard: dashboard, logger: logger}
}

// RunReportRequest is the body of POST /api/report.
type RunReportRequest struct {
	Date string `json:"date"`
}

// RunReportResponse reports the outcome of a report cycle.
type RunReportResponse struct {
	Outcome usecase.Outcome `json:"outcome"`
	Message string          `json:"message"`
	RunID   string          `json:"run_id,omitempty"`
	Date    string          `json:"date,omitempty"`
	Items   int             `json:"items,omitempty"`
}

// ErrorResponse is returned for request errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListDatasets returns the names of the published destinations.
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Dataset{"datasets": domain.PublishedDatasets})
}

// GetDataset returns one published destination.
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := domain.ParseDataset(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown dataset", err)
		return
	}

	data, err := h.dashboard.Store().Dataset(ds)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown dataset", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GetReport returns the last published report.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Store().Snapshot())
}

// RunReport runs a report cycle for the requested date. Only one cycle runs
// at a time; a concurrent request gets 409.
func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	var req RunReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	date, err := usecase.ParseReportDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	if !h.running.TryLock() {
		writeError(w, http.StatusConflict, "a report is already running", nil)
		return
	}
	defer h.running.Unlock()

	rec := &usecase.Recorder{}
	runErr := h.dashboard.RunReport(r.Context(), date, rec)
	outcome, msg := rec.Result()

	switch outcome {
	case usecase.OutcomeValidation:
		writeJSON(w, http.StatusBadRequest, RunReportResponse{Outcome: outcome, Message: msg})
	case usecase.OutcomeFailure:
		h.logger.Error().Err(runErr).Str("request_id", middleware.GetReqID(r.Context())).Msg("report run failed")
		writeJSON(w, http.StatusBadGateway, RunReportResponse{Outcome: outcome, Message: msg})
	default:
		snap := h.dashboard.Store().Snapshot()
		writeJSON(w, http.StatusOK, RunReportResponse{
			Outcome: outcome,
			Message: msg,
			RunID:   snap.RunID,
			Date:    snap.Date,
			Items:   len(snap.Items),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
