package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Generator produces the automated content for a day
type Generator interface {
	Generate(ctx context.Context, day time.Time) error
}

/* Scheduler triggers automated generation once a day
 * unless content already arrived through the webhook that day.
 */
type Scheduler struct {
	cron      *cron.Cron
	tracker   Tracker
	generator Generator
	location  *time.Location
	logger    zerolog.Logger
}

// NewScheduler parses a standard 5-field cron spec evaluated in loc
func NewScheduler(spec string, loc *time.Location, tracker Tracker, generator Generator, logger zerolog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		tracker:   tracker,
		generator: generator,
		location:  loc,
		logger:    logger,
	}
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.RunAt(context.Background(), time.Now().In(s.location)); err != nil {
			s.logger.Error().Err(err).Msg("scheduled generation failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunAt performs one scheduling decision for the day of now. It reports whether generation ran.
func (s *Scheduler) RunAt(ctx context.Context, now time.Time) (bool, error) {
	day := now.In(s.location)
	received, err := s.tracker.ExternalContentReceived(ctx, day)
	if err != nil {
		return false, fmt.Errorf("checking external content: %w", err)
	}
	if received {
		s.logger.Info().Str("day", DayKey(day)).Msg("external content received today, skipping generation")
		return false, nil
	}

	if err := s.generator.Generate(ctx, day); err != nil {
		return false, fmt.Errorf("generating content: %w", err)
	}
	s.logger.Info().Str("day", DayKey(day)).Msg("generation triggered")
	return true, nil
}
