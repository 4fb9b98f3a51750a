package webhook

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no request or job matches the lookup
	ErrNotFound = errors.New("not found")

	// ErrDuplicateRequest is returned by Create when the idempotency key already exists
	ErrDuplicateRequest = errors.New("duplicate request")

	// ErrInvalidTransition is returned when a job update would move its status backwards
	ErrInvalidTransition = errors.New("invalid status transition")
)

/* Small, focused interfaces
 * Interfaces abstract behavior, not things
 */

// Reader provides read operations for requests and jobs
type Reader interface {
	GetByIdempotencyKey(ctx context.Context, key string) (Request, error)
	GetJob(ctx context.Context, trackingID string) (Job, error)
}

// Writer provides write operations for requests and jobs
type Writer interface {
	/* Create stores the request and its job in one transaction
	 * Returns ErrDuplicateRequest when the idempotency key is already taken
	 */
	Create(ctx context.Context, req Request, job Job) error
	MarkProcessing(ctx context.Context, jobID string, at time.Time) error
	Complete(ctx context.Context, jobID string, outcome Outcome, at time.Time) error
	Fail(ctx context.Context, jobID string, errorMessage string, at time.Time) error
	RecordCallback(ctx context.Context, jobID string, status CallbackStatus, attempts int) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}

// JobQueue runs tasks detached from the caller
type JobQueue interface {
	Enqueue(task Task)
}
