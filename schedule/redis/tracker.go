package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/content-webhook/schedule"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of schedule.Tracker
 * One key per day: schedule:external-content:{YYYY-MM-DD}, expiring after two days
 * so several API instances share the same view.
 */

const (
	keyPrefix = "schedule:external-content"
	dayTTL    = 48 * time.Hour
)

type Tracker struct {
	client *redis.Client
}

// NewTracker connects to Redis and checks the connection
func NewTracker(addr, password string, db int) (*Tracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Tracker{client: client}, nil
}

func (t *Tracker) MarkExternalContent(ctx context.Context, day time.Time) error {
	err := t.client.Set(ctx, Key(day), time.Now().Unix(), dayTTL).Err()
	if err != nil {
		return fmt.Errorf("marking external content: %w", err)
	}
	return nil
}

func (t *Tracker) ExternalContentReceived(ctx context.Context, day time.Time) (bool, error) {
	n, err := t.client.Exists(ctx, Key(day)).Result()
	if err != nil {
		return false, fmt.Errorf("checking external content: %w", err)
	}
	return n > 0, nil
}

// Key returns the Redis key holding the mark for day
func Key(day time.Time) string {
	return fmt.Sprintf("%s:%s", keyPrefix, schedule.DayKey(day))
}

// Client returns the underlying Redis client
func (t *Tracker) Client() *redis.Client {
	return t.client
}

func (t *Tracker) Close(ctx context.Context) error {
	return t.client.Close()
}
