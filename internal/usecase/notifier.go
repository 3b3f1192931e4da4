package usecase

import (
	"sync"

	"github.com/rs/zerolog"
)

// Outcome classifies how a report cycle ended.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeValidation Outcome = "validation"
	OutcomeSuccess    Outcome = "success"
	OutcomeFailure    Outcome = "failure"
)

// Recorder is a Notifier that remembers the outcome of a single run.
type Recorder struct {
	mu      sync.Mutex
	outcome Outcome
	message string
	cause   error
	done    int
}

func (r *Recorder) set(o Outcome, msg string, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome, r.message, r.cause = o, msg, cause
}

// Validation records a validation outcome.
func (r *Recorder) Validation(message string) {
	r.set(OutcomeValidation, message, nil)
}

// Success records a successful cycle.
func (r *Recorder) Success(message string) {
	r.set(OutcomeSuccess, message, nil)
}

// Failure records a failed cycle and its cause.
func (r *Recorder) Failure(message string, cause error) {
	r.set(OutcomeFailure, message, cause)
}

// Done counts a completion signal.
func (r *Recorder) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
}

// Result returns the recorded outcome and message.
func (r *Recorder) Result() (Outcome, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome, r.message
}

// Cause returns the error passed to Failure, if any.
func (r *Recorder) Cause() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cause
}

// Completions reports how many times Done was called.
func (r *Recorder) Completions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// LogNotifier writes user-facing outcomes to a zerolog logger.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Validation logs message at warn level.
func (l LogNotifier) Validation(message string) {
	l.Logger.Warn().Msg(message)
}

// Success logs message at info level.
func (l LogNotifier) Success(message string) {
	l.Logger.Info().Msg(message)
}

// Failure logs message with its cause at error level.
func (l LogNotifier) Failure(message string, cause error) {
	l.Logger.Error().Err(cause).Msg(message)
}

// Done is a no-op; log lines need no clearing.
func (l LogNotifier) Done() {}
