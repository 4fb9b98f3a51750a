package callback

import "github.com/marcelsud/content-webhook/webhook"

// ErrorCodeProcessingFailed is reported when the publish job failed
const ErrorCodeProcessingFailed = "PROCESSING_FAILED"

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// Notification is the JSON body POSTed to the caller's notification URL
type Notification struct {
	Status         string       `json:"status"`
	TrackingID     string       `json:"trackingId"`
	IdempotencyKey string       `json:"idempotencyKey"`
	Data           *SuccessData `json:"data,omitempty"`
	Error          *ErrorData   `json:"error,omitempty"`
}

type SuccessData struct {
	PostURL string `json:"postUrl"`
	PostID  string `json:"postId"`
	Message string `json:"message,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success builds the notification for a completed job
func Success(trackingID, idempotencyKey string, outcome webhook.Outcome) Notification {
	return Notification{
		Status:         statusSuccess,
		TrackingID:     trackingID,
		IdempotencyKey: idempotencyKey,
		Data: &SuccessData{
			PostURL: outcome.PublishedURL,
			PostID:  outcome.PublishedContentID,
			Message: outcome.Message,
		},
	}
}

// Failure builds the notification for a failed job
func Failure(trackingID, idempotencyKey, message string) Notification {
	return Notification{
		Status:         statusFailed,
		TrackingID:     trackingID,
		IdempotencyKey: idempotencyKey,
		Error: &ErrorData{
			Code:    ErrorCodeProcessingFailed,
			Message: message,
		},
	}
}
