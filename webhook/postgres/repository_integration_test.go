//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/content-webhook/webhook"
	"github.com/marcelsud/content-webhook/webhook/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPair(key string) (webhook.Request, webhook.Job) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	req := webhook.Request{
		ID:              uuid.NewString(),
		IdempotencyKey:  key,
		TrackingID:      uuid.NewString(),
		ContentType:     payload.TypeBlogPost,
		TargetPlatform:  payload.TargetPlatform{Name: "blog", PublishStatus: payload.Publish},
		NotificationURL: "https://client.example.com/callback",
		Payload:         []byte(`{"idempotencyKey":"` + key + `"}`),
		Signature:       "sha256=ff",
		Timestamp:       "1700000000000",
		SourceIP:        "10.0.0.1",
		CreatedAt:       now,
	}
	job := webhook.Job{
		ID:             uuid.NewString(),
		RequestID:      req.ID,
		TrackingID:     req.TrackingID,
		Status:         webhook.Queued,
		ContentType:    payload.TypeBlogPost,
		PublishStatus:  payload.Publish,
		ContentData:    []byte(`{"title":"Test Post"}`),
		CallbackStatus: webhook.CallbackUndetermined,
		CreatedAt:      now,
	}
	return req, job
}

func TestRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, cleanup := SetupPostgresContainer(t, ctx)
	defer cleanup()

	repo := NewRepository(db)

	t.Run("create and read back", func(t *testing.T) {
		CleanupDatabase(t, ctx, db)
		key := webhook.GenerateKey(t, 1)
		req, job := newPair(key)

		require.NoError(t, repo.Create(ctx, req, job))

		got, err := repo.GetByIdempotencyKey(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, req.TrackingID, got.TrackingID)
		assert.Equal(t, req.NotificationURL, got.NotificationURL)

		storedJob, err := repo.GetJob(ctx, req.TrackingID)
		require.NoError(t, err)
		assert.Equal(t, webhook.Queued, storedJob.Status)
		assert.JSONEq(t, `{"title":"Test Post"}`, string(storedJob.ContentData))
	})

	t.Run("sequential duplicate is rejected", func(t *testing.T) {
		CleanupDatabase(t, ctx, db)
		first, firstJob := newPair("dup")
		second, secondJob := newPair("dup")

		require.NoError(t, repo.Create(ctx, first, firstJob))
		err := repo.Create(ctx, second, secondJob)

		assert.ErrorIs(t, err, webhook.ErrDuplicateRequest)
		assert.Equal(t, 1, CountRows(t, ctx, db, "webhook_requests"))
		assert.Equal(t, 1, CountRows(t, ctx, db, "webhook_jobs"))
	})

	t.Run("concurrent duplicates leave exactly one pair", func(t *testing.T) {
		CleanupDatabase(t, ctx, db)
		const n = 10

		var wg sync.WaitGroup
		var mu sync.Mutex
		created, duplicates := 0, 0
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req, job := newPair("race")
				err := repo.Create(ctx, req, job)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					created++
				case assert.ErrorIs(t, err, webhook.ErrDuplicateRequest):
					duplicates++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, n-1, duplicates)
		assert.Equal(t, 1, CountRows(t, ctx, db, "webhook_requests"))
		assert.Equal(t, 1, CountRows(t, ctx, db, "webhook_jobs"))
	})

	t.Run("lifecycle only moves forward", func(t *testing.T) {
		CleanupDatabase(t, ctx, db)
		req, job := newPair(webhook.GenerateKey(t, 2))
		require.NoError(t, repo.Create(ctx, req, job))
		now := time.Now().UTC()

		assert.ErrorIs(t, repo.Complete(ctx, job.ID, webhook.Outcome{}, now), webhook.ErrInvalidTransition)
		require.NoError(t, repo.MarkProcessing(ctx, job.ID, now))
		assert.ErrorIs(t, repo.MarkProcessing(ctx, job.ID, now), webhook.ErrInvalidTransition)
		require.NoError(t, repo.Complete(ctx, job.ID, webhook.Outcome{
			PublishedContentID: "1",
			PublishedURL:       "https://site.example.com/blog/test-post",
		}, now))
		assert.ErrorIs(t, repo.Fail(ctx, job.ID, "late", now), webhook.ErrInvalidTransition)
		require.NoError(t, repo.RecordCallback(ctx, job.ID, webhook.CallbackFailed, 3))

		stored, err := repo.GetJob(ctx, req.TrackingID)
		require.NoError(t, err)
		assert.Equal(t, webhook.Completed, stored.Status)
		assert.Equal(t, "https://site.example.com/blog/test-post", stored.PublishedURL)
		assert.Equal(t, webhook.CallbackFailed, stored.CallbackStatus)
		assert.Equal(t, 3, stored.CallbackAttempts)
		assert.NotNil(t, stored.StartedAt)
		assert.NotNil(t, stored.CompletedAt)
	})

	t.Run("unknown tracking id", func(t *testing.T) {
		_, err := repo.GetJob(ctx, uuid.NewString())
		assert.ErrorIs(t, err, webhook.ErrNotFound)
	})
}
