package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/content-webhook/webhook"
	"github.com/marcelsud/content-webhook/webhook/payload"
	"github.com/marcelsud/content-webhook/webhook/signature"
)

/* HTTP layer DTOs for the publish API
 * Separate from domain entities to avoid leaking internal structure
 */

type fieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type failureResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type acceptedResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	TrackingID string `json:"trackingId"`
}

type jobResponse struct {
	TrackingID       string     `json:"trackingId"`
	Status           string     `json:"status"`
	ContentType      string     `json:"contentType"`
	PublishStatus    string     `json:"publishStatus"`
	PostID           string     `json:"postId,omitempty"`
	PostURL          string     `json:"postUrl,omitempty"`
	Message          string     `json:"message,omitempty"`
	Error            string     `json:"error,omitempty"`
	CallbackStatus   string     `json:"callbackStatus"`
	CallbackAttempts int        `json:"callbackAttempts"`
	CreatedAt        time.Time  `json:"createdAt"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// postPublish handles POST /api/v1/content/publish
func postPublish(service webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "failed to read request body", nil)
			return
		}
		defer r.Body.Close()

		receipt, err := service.Submit(r.Context(), body, webhook.Metadata{
			Signature: r.Header.Get(signature.HeaderSignature),
			Timestamp: r.Header.Get(signature.HeaderTimestamp),
			SourceIP:  clientIP(r),
		})
		var verr *payload.ValidationError
		switch {
		case errors.As(err, &verr):
			fields := make([]fieldError, 0, len(verr.Errors))
			for _, fe := range verr.Errors {
				fields = append(fields, fieldError{Field: fe.Field, Error: fe.Message})
			}
			writeFailure(w, http.StatusBadRequest, "validation failed", fields)
			return
		case err != nil:
			httplog.LogEntrySetField(r.Context(), "error", err.Error())
			writeFailure(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		httplog.LogEntrySetField(r.Context(), "trackingId", receipt.TrackingID)
		message := "content accepted for processing"
		if receipt.Duplicate {
			message = "request already received"
		}
		writeJSON(w, http.StatusAccepted, acceptedResponse{
			Status:     "processing",
			Message:    message,
			TrackingID: receipt.TrackingID,
		})
	})
}

// getPublishStatus handles GET /api/v1/content/publish/{trackingId}
func getPublishStatus(service webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trackingID := chi.URLParam(r, "trackingId")

		job, err := service.Status(r.Context(), trackingID)
		if errors.Is(err, webhook.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "tracking id not found", nil)
			return
		}
		if err != nil {
			httplog.LogEntrySetField(r.Context(), "error", err.Error())
			writeFailure(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		writeJSON(w, http.StatusOK, jobResponse{
			TrackingID:       job.TrackingID,
			Status:           job.Status.String(),
			ContentType:      job.ContentType.String(),
			PublishStatus:    job.PublishStatus.String(),
			PostID:           job.PublishedContentID,
			PostURL:          job.PublishedURL,
			Message:          job.Message,
			Error:            job.ErrorMessage,
			CallbackStatus:   job.CallbackStatus.String(),
			CallbackAttempts: job.CallbackAttempts,
			CreatedAt:        job.CreatedAt,
			StartedAt:        job.StartedAt,
			CompletedAt:      job.CompletedAt,
		})
	})
}

func writeFailure(w http.ResponseWriter, status int, message string, fields []fieldError) {
	writeJSON(w, status, failureResponse{Status: "failed", Message: message, Errors: fields})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
