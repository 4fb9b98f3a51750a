package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelsud/content-webhook/schedule"
	"github.com/marcelsud/content-webhook/schedule/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("skips when external content arrived today", func(t *testing.T) {
		tracker := schedule.NewMemoryTracker()
		require.NoError(t, tracker.MarkExternalContent(ctx, now.Add(-2*time.Hour)))
		gen := mocks.NewGenerator(t)

		s, err := schedule.NewScheduler("0 9 * * *", time.UTC, tracker, gen, zerolog.Nop())
		require.NoError(t, err)

		ran, err := s.RunAt(ctx, now)
		require.NoError(t, err)
		assert.False(t, ran)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("generates when nothing arrived", func(t *testing.T) {
		tracker := schedule.NewMemoryTracker()
		gen := mocks.NewGenerator(t)
		gen.On("Generate", ctx, now).Return(nil)

		s, err := schedule.NewScheduler("0 9 * * *", time.UTC, tracker, gen, zerolog.Nop())
		require.NoError(t, err)

		ran, err := s.RunAt(ctx, now)
		require.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("tracker error", func(t *testing.T) {
		tracker := mocks.NewTracker(t)
		tracker.On("ExternalContentReceived", ctx, now).Return(false, errors.New("redis down"))

		s, err := schedule.NewScheduler("0 9 * * *", time.UTC, tracker, mocks.NewGenerator(t), zerolog.Nop())
		require.NoError(t, err)

		_, err = s.RunAt(ctx, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checking external content")
	})

	t.Run("generator error", func(t *testing.T) {
		gen := mocks.NewGenerator(t)
		gen.On("Generate", ctx, now).Return(errors.New("503"))

		s, err := schedule.NewScheduler("0 9 * * *", time.UTC, schedule.NewMemoryTracker(), gen, zerolog.Nop())
		require.NoError(t, err)

		ran, err := s.RunAt(ctx, now)
		require.Error(t, err)
		assert.False(t, ran)
	})

	t.Run("error - invalid cron expression", func(t *testing.T) {
		_, err := schedule.NewScheduler("every morning", time.UTC, schedule.NewMemoryTracker(), mocks.NewGenerator(t), zerolog.Nop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing schedule")
	})

	t.Run("start and stop", func(t *testing.T) {
		s, err := schedule.NewScheduler("@hourly", time.UTC, schedule.NewMemoryTracker(), mocks.NewGenerator(t), zerolog.Nop())
		require.NoError(t, err)
		s.Start()
		stopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		assert.NoError(t, s.Stop(stopCtx))
	})
}
