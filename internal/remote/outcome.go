package remote

import (
	"errors"

	"countdown/internal/core/countdown"
)

var (
	// ErrTransport indicates the request never produced a response.
	ErrTransport = errors.New("remote transport failure")
	// ErrStatus indicates a non-success HTTP status.
	ErrStatus = errors.New("remote returned non-success status")
	// ErrMalformed indicates the body holds no breakdown-shaped object.
	ErrMalformed = errors.New("remote payload malformed")
	// ErrDisabled indicates remote lookups are switched off.
	ErrDisabled = errors.New("remote lookup disabled")
)

// Fields records which optional units a source actually supplied.
type Fields struct {
	Years  bool
	Months bool
}

// AllFields is the field set of a locally computed breakdown.
func AllFields() Fields {
	return Fields{Years: true, Months: true}
}

// Outcome is the result of a single lookup: either a remote snapshot or a
// request to fall back, with the reason kept for logging.
type Outcome struct {
	Breakdown  countdown.Breakdown
	Fields     Fields
	StatusCode int
	Reason     error
}

// Available reports whether the remote supplied a usable breakdown.
func (outcome Outcome) Available() bool {
	return outcome.Reason == nil
}

// Kind returns a short label for metrics and logs.
func (outcome Outcome) Kind() string {
	switch {
	case outcome.Reason == nil:
		return "remote"
	case errors.Is(outcome.Reason, ErrDisabled):
		return "disabled"
	case errors.Is(outcome.Reason, ErrStatus):
		return "status"
	case errors.Is(outcome.Reason, ErrMalformed):
		return "malformed"
	default:
		return "transport"
	}
}

// Unavailable builds a fallback outcome.
func Unavailable(reason error) Outcome {
	if reason == nil {
		reason = ErrMalformed
	}
	return Outcome{Reason: reason}
}
