package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/marcelsud/content-webhook/webhook"
	"github.com/marcelsud/content-webhook/webhook/payload"
)

/* PostgreSQL tracking store
 * webhook_requests is the idempotency ledger, the unique index on idempotency_key is the only
 * concurrency control for duplicate submissions. webhook_jobs holds one job per request.
 */

const uniqueViolation = "23505"

type Repository struct {
	DB *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts the request and its job atomically
func (r *Repository) Create(ctx context.Context, req webhook.Request, job webhook.Job) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO webhook_requests (id, idempotency_key, tracking_id, content_type,
			target_platform_name, publish_status, notification_url, payload,
			signature, request_timestamp, source_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		req.ID,
		req.IdempotencyKey,
		req.TrackingID,
		req.ContentType.String(),
		req.TargetPlatform.Name,
		req.TargetPlatform.PublishStatus.String(),
		req.NotificationURL,
		string(req.Payload),
		req.Signature,
		req.Timestamp,
		req.SourceIP,
		req.CreatedAt,
	)
	if isUniqueViolation(err) {
		return webhook.ErrDuplicateRequest
	}
	if err != nil {
		return fmt.Errorf("inserting request: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO webhook_jobs (id, request_id, tracking_id, status, content_type,
			publish_status, content_data, callback_attempts, callback_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		job.ID,
		job.RequestID,
		job.TrackingID,
		job.Status.String(),
		job.ContentType.String(),
		job.PublishStatus.String(),
		string(job.ContentData),
		job.CallbackAttempts,
		job.CallbackStatus.String(),
		job.CreatedAt,
	)
	if isUniqueViolation(err) {
		return webhook.ErrDuplicateRequest
	}
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return webhook.ErrDuplicateRequest
		}
		return fmt.Errorf("committing request: %w", err)
	}
	return nil
}

func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (webhook.Request, error) {
	query := `
		SELECT id, idempotency_key, tracking_id, content_type, target_platform_name,
			publish_status, notification_url, payload, signature, request_timestamp,
			source_ip, created_at
		FROM webhook_requests WHERE idempotency_key = $1
	`

	var req webhook.Request
	var contentType, publishStatus, body string
	err := r.DB.QueryRowContext(ctx, query, key).Scan(
		&req.ID,
		&req.IdempotencyKey,
		&req.TrackingID,
		&contentType,
		&req.TargetPlatform.Name,
		&publishStatus,
		&req.NotificationURL,
		&body,
		&req.Signature,
		&req.Timestamp,
		&req.SourceIP,
		&req.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return webhook.Request{}, webhook.ErrNotFound
	}
	if err != nil {
		return webhook.Request{}, fmt.Errorf("selecting request: %w", err)
	}
	req.ContentType = payload.ContentType(contentType)
	req.TargetPlatform.PublishStatus = payload.PublishStatus(publishStatus)
	req.Payload = []byte(body)

	return req, nil
}

func (r *Repository) GetJob(ctx context.Context, trackingID string) (webhook.Job, error) {
	query := `
		SELECT id, request_id, tracking_id, status, content_type, publish_status,
			content_data, published_content_id, published_url, message, error_message,
			callback_attempts, callback_status, created_at, started_at, completed_at
		FROM webhook_jobs WHERE tracking_id = $1
	`

	var job webhook.Job
	var status, contentType, publishStatus, data, callbackStatus string
	var startedAt, completedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, trackingID).Scan(
		&job.ID,
		&job.RequestID,
		&job.TrackingID,
		&status,
		&contentType,
		&publishStatus,
		&data,
		&job.PublishedContentID,
		&job.PublishedURL,
		&job.Message,
		&job.ErrorMessage,
		&job.CallbackAttempts,
		&callbackStatus,
		&job.CreatedAt,
		&startedAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return webhook.Job{}, webhook.ErrNotFound
	}
	if err != nil {
		return webhook.Job{}, fmt.Errorf("selecting job: %w", err)
	}
	job.Status = webhook.NewStatus(status)
	job.ContentType = payload.ContentType(contentType)
	job.PublishStatus = payload.PublishStatus(publishStatus)
	job.ContentData = []byte(data)
	job.CallbackStatus = webhook.NewCallbackStatus(callbackStatus)
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}

	return job, nil
}

// MarkProcessing moves a queued job to processing
func (r *Repository) MarkProcessing(ctx context.Context, jobID string, at time.Time) error {
	query := `
		UPDATE webhook_jobs SET status = $1, started_at = $2
		WHERE id = $3 AND status = $4
	`
	return r.transition(ctx, query, webhook.Processing.String(), at, jobID, webhook.Queued.String())
}

// Complete moves a processing job to completed and records where the content landed
func (r *Repository) Complete(ctx context.Context, jobID string, outcome webhook.Outcome, at time.Time) error {
	query := `
		UPDATE webhook_jobs
		SET status = $1, published_content_id = $2, published_url = $3, message = $4, completed_at = $5
		WHERE id = $6 AND status = $7
	`
	return r.transition(ctx, query,
		webhook.Completed.String(),
		outcome.PublishedContentID,
		outcome.PublishedURL,
		outcome.Message,
		at,
		jobID,
		webhook.Processing.String(),
	)
}

// Fail moves a processing job to failed
func (r *Repository) Fail(ctx context.Context, jobID string, errorMessage string, at time.Time) error {
	query := `
		UPDATE webhook_jobs SET status = $1, error_message = $2, completed_at = $3
		WHERE id = $4 AND status = $5
	`
	return r.transition(ctx, query, webhook.Failed.String(), errorMessage, at, jobID, webhook.Processing.String())
}

// RecordCallback stores the callback outcome. It never touches the job status.
func (r *Repository) RecordCallback(ctx context.Context, jobID string, status webhook.CallbackStatus, attempts int) error {
	query := `UPDATE webhook_jobs SET callback_status = $1, callback_attempts = $2 WHERE id = $3`

	result, err := r.DB.ExecContext(ctx, query, status.String(), attempts, jobID)
	if err != nil {
		return fmt.Errorf("recording callback: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return webhook.ErrNotFound
	}
	return nil
}

// transition runs a status update guarded on the current status. No row updated means the move was not allowed.
func (r *Repository) transition(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return webhook.ErrInvalidTransition
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTables creates the tracking tables
func (r *Repository) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS webhook_requests (
			id UUID PRIMARY KEY,
			idempotency_key VARCHAR(255) NOT NULL UNIQUE,
			tracking_id UUID NOT NULL UNIQUE,
			content_type TEXT NOT NULL,
			target_platform_name TEXT NOT NULL,
			publish_status TEXT NOT NULL,
			notification_url TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL,
			signature TEXT NOT NULL DEFAULT '',
			request_timestamp TEXT NOT NULL DEFAULT '',
			source_ip TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS webhook_jobs (
			id UUID PRIMARY KEY,
			request_id UUID NOT NULL UNIQUE REFERENCES webhook_requests(id),
			tracking_id UUID NOT NULL UNIQUE,
			status TEXT NOT NULL,
			content_type TEXT NOT NULL,
			publish_status TEXT NOT NULL,
			content_data JSONB NOT NULL,
			published_content_id TEXT NOT NULL DEFAULT '',
			published_url TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			error_message TEXT NOT NULL DEFAULT '',
			callback_attempts INTEGER NOT NULL DEFAULT 0,
			callback_status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			started_at TIMESTAMPTZ,
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_webhook_jobs_status ON webhook_jobs (status)`,
	}
	for _, q := range queries {
		if _, err := r.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("creating tracking tables: %w", err)
		}
	}
	return nil
}

// DropTables removes the tracking tables (useful for tests)
func (r *Repository) DropTables(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, "DROP TABLE IF EXISTS webhook_jobs, webhook_requests CASCADE"); err != nil {
		return fmt.Errorf("dropping tracking tables: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
