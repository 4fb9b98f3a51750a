//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/content-webhook/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	repo, cleanup := SetupPostgresContainer(t, ctx)
	defer cleanup()

	service := content.NewService(repo)

	t.Run("no admin before seeding", func(t *testing.T) {
		CleanupDatabase(t, ctx, repo.DB)

		_, err := service.DefaultAuthor(ctx)
		assert.ErrorIs(t, err, content.ErrNoDefaultAuthor)
	})

	t.Run("publish and read back", func(t *testing.T) {
		CleanupDatabase(t, ctx, repo.DB)
		admin, err := service.EnsureDefaultAuthor(ctx, "Admin", "admin@example.com")
		require.NoError(t, err)

		saved, err := service.Publish(ctx, content.Article{
			Title:    "Test Post",
			Slug:     "test-post",
			Body:     "Test Body text",
			Category: content.News,
			Tags:     []string{"go"},
			Status:   content.Published,
			AuthorID: admin.ID,
			Source:   content.SourceWebhook,
		})
		require.NoError(t, err)

		got, err := service.GetBySlug(ctx, "test-post")
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, content.News, got.Category)
		assert.Equal(t, []string{"go"}, got.Tags)
		require.NotNil(t, got.PublishedAt)
		assert.WithinDuration(t, time.Now(), *got.PublishedAt, time.Minute)
	})

	t.Run("slug conflict", func(t *testing.T) {
		CleanupDatabase(t, ctx, repo.DB)
		admin, err := service.EnsureDefaultAuthor(ctx, "Admin", "admin@example.com")
		require.NoError(t, err)

		a := content.Article{Title: "A", Slug: "same", Body: "b", Category: content.Technology, Status: content.Draft, AuthorID: admin.ID}
		_, err = service.Publish(ctx, a)
		require.NoError(t, err)

		_, err = service.Publish(ctx, a)
		assert.ErrorIs(t, err, content.ErrSlugTaken)
	})
}
