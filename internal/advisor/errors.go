package advisor

import "errors"

var (
	// ErrUnavailable means the text-generation service failed or timed out.
	// The session phase is left unchanged so the caller may retry.
	ErrUnavailable = errors.New("advisor temporarily unavailable")
	// ErrSessionBusy means another operation is in flight for the same session.
	ErrSessionBusy = errors.New("session has an operation in flight")
	// ErrDetailsRequired means a recommendation was requested before the
	// structured preference submission.
	ErrDetailsRequired = errors.New("plan details not submitted yet")
)

const (
	ErrorCodeUnavailable     = "advisor_unavailable"
	ErrorCodeSessionBusy     = "session_busy"
	ErrorCodeDetailsRequired = "details_required"
	ErrorCodeValidation      = "validation_error"
)
