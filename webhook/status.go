package webhook

import "fmt"

/* Status represents the current state of a publish job
 * Follows the lifecycle: Queued -> Processing -> Completed/Failed
 */
type Status int

const (
	Queued Status = iota + 1
	Processing
	Completed
	Failed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Queued:
		return "queued"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// NewStatus creates a Status from a string
func NewStatus(str string) Status {
	switch str {
	case "queued":
		return Queued
	case "processing":
		return Processing
	case "completed":
		return Completed
	case "failed":
		return Failed
	default:
		return Queued
	}
}

// Validate checks if the status is valid
func (s Status) Validate() error {
	if s < Queued || s > Failed {
		return fmt.Errorf("invalid status: %d", s)
	}
	return nil
}

// IsFinal returns true if the status is a terminal state
func (s Status) IsFinal() bool {
	return s == Completed || s == Failed
}

// CanTransitionTo reports whether moving from s to next keeps the lifecycle moving forward
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case Queued:
		return next == Processing
	case Processing:
		return next == Completed || next == Failed
	}
	return false
}

// CallbackStatus is the outcome of notifying the caller
type CallbackStatus int

const (
	CallbackUndetermined CallbackStatus = iota + 1
	CallbackSuccess
	CallbackFailed
)

func (c CallbackStatus) String() string {
	switch c {
	case CallbackUndetermined:
		return "undetermined"
	case CallbackSuccess:
		return "success"
	case CallbackFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NewCallbackStatus creates a CallbackStatus from a string
func NewCallbackStatus(str string) CallbackStatus {
	switch str {
	case "success":
		return CallbackSuccess
	case "failed":
		return CallbackFailed
	default:
		return CallbackUndetermined
	}
}
