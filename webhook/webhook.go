package webhook

import (
	"time"

	"github.com/marcelsud/content-webhook/webhook/payload"
)

/* Request is the audit record of an accepted submission
 * Created once per idempotency key and never mutated afterwards
 */
type Request struct {
	ID              string
	IdempotencyKey  string
	TrackingID      string
	ContentType     payload.ContentType
	TargetPlatform  payload.TargetPlatform
	NotificationURL string
	Payload         []byte
	Signature       string
	Timestamp       string
	SourceIP        string
	CreatedAt       time.Time
}

/* Job is the unit of asynchronous work created alongside a Request
 * Uses value semantics as it represents data, not behavior
 */
type Job struct {
	ID                 string
	RequestID          string
	TrackingID         string
	Status             Status
	ContentType        payload.ContentType
	PublishStatus      payload.PublishStatus
	ContentData        []byte
	PublishedContentID string
	PublishedURL       string
	Message            string
	ErrorMessage       string
	CallbackAttempts   int
	CallbackStatus     CallbackStatus
	CreatedAt          time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
}

// Task is what the queue hands to the processor
type Task struct {
	Request Request
	Job     Job
}

// Outcome is the result of a successful publish
type Outcome struct {
	PublishedContentID string
	PublishedURL       string
	Message            string
}

// Metadata is the transport information stored with a request
type Metadata struct {
	Signature string
	Timestamp string
	SourceIP  string
}

// Receipt is what the caller gets back when a submission is accepted
type Receipt struct {
	TrackingID string
	// Duplicate is true when the idempotency key was seen before and nothing new was created
	Duplicate bool
}
