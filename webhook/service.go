package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/content-webhook/webhook/payload"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the operations exposed to the transport layer
type UseCase interface {
	Submit(ctx context.Context, body []byte, meta Metadata) (Receipt, error)
	Status(ctx context.Context, trackingID string) (Job, error)
}

type Service struct {
	Repo  Repository
	Queue JobQueue
}

// NewService creates a new webhook service with dependency injection
func NewService(repo Repository, queue JobQueue) *Service {
	return &Service{
		Repo:  repo,
		Queue: queue,
	}
}

/* Submit accepts an authenticated request body.
 * A known idempotency key short-circuits before validation and replays the original tracking id.
 * Validation failures are returned as *payload.ValidationError.
 */
func (s *Service) Submit(ctx context.Context, body []byte, meta Metadata) (Receipt, error) {
	if key := payload.PeekIdempotencyKey(body); key != "" {
		receipt, found, err := s.replay(ctx, key)
		if err != nil {
			return Receipt{}, err
		}
		if found {
			return receipt, nil
		}
	}

	sub, err := payload.Parse(body)
	if err != nil {
		return Receipt{}, err
	}

	contentData, err := json.Marshal(sub.Content)
	if err != nil {
		return Receipt{}, fmt.Errorf("marshaling content data: %w", err)
	}

	now := time.Now().UTC()
	req := Request{
		ID:              uuid.NewString(),
		IdempotencyKey:  sub.Envelope.IdempotencyKey,
		TrackingID:      uuid.NewString(),
		ContentType:     sub.Envelope.ContentType,
		TargetPlatform:  sub.Envelope.TargetPlatform,
		NotificationURL: sub.Envelope.NotificationURL,
		Payload:         body,
		Signature:       meta.Signature,
		Timestamp:       meta.Timestamp,
		SourceIP:        meta.SourceIP,
		CreatedAt:       now,
	}
	job := Job{
		ID:             uuid.NewString(),
		RequestID:      req.ID,
		TrackingID:     req.TrackingID,
		Status:         Queued,
		ContentType:    req.ContentType,
		PublishStatus:  req.TargetPlatform.PublishStatus,
		ContentData:    contentData,
		CallbackStatus: CallbackUndetermined,
		CreatedAt:      now,
	}

	err = s.Repo.Create(ctx, req, job)
	if errors.Is(err, ErrDuplicateRequest) {
		// lost a race against a concurrent submission with the same key
		receipt, found, err := s.replay(ctx, req.IdempotencyKey)
		if err != nil {
			return Receipt{}, err
		}
		if !found {
			return Receipt{}, fmt.Errorf("replaying duplicate request: %w", ErrNotFound)
		}
		return receipt, nil
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("storing request: %w", err)
	}

	s.Queue.Enqueue(Task{Request: req, Job: job})

	return Receipt{TrackingID: req.TrackingID}, nil
}

// Status returns the job tracked by trackingID
func (s *Service) Status(ctx context.Context, trackingID string) (Job, error) {
	job, err := s.Repo.GetJob(ctx, trackingID)
	if err != nil {
		return Job{}, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

func (s *Service) replay(ctx context.Context, key string) (Receipt, bool, error) {
	existing, err := s.Repo.GetByIdempotencyKey(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Receipt{}, false, nil
	}
	if err != nil {
		return Receipt{}, false, fmt.Errorf("looking up idempotency key: %w", err)
	}
	return Receipt{TrackingID: existing.TrackingID, Duplicate: true}, true, nil
}
