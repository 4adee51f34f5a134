package tracker

import "errors"

var (
	// ErrNoActiveSession reports a clock-out with nothing running. It is a
	// benign condition, not a failure.
	ErrNoActiveSession = errors.New("no active session")

	// ErrAlreadyClockedIn rejects a clock-in while a session is active.
	ErrAlreadyClockedIn = errors.New("a session is already active")
)

// ValidationError reports rejected input. The operation is a no-op and no
// partial state is persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
