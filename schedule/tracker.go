package schedule

import (
	"context"
	"sync"
	"time"
)

/* Tracker is the shared record of days on which content arrived through the webhook.
 * The publish pipeline writes to it and the generation scheduler reads from it.
 */
type Tracker interface {
	MarkExternalContent(ctx context.Context, day time.Time) error
	ExternalContentReceived(ctx context.Context, day time.Time) (bool, error)
}

// DayKey identifies a calendar day in the location carried by t
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// MemoryTracker keeps the marks in process memory. Enough for a single instance.
type MemoryTracker struct {
	mu   sync.Mutex
	days map[string]time.Time
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{days: make(map[string]time.Time)}
}

func (m *MemoryTracker) MarkExternalContent(_ context.Context, day time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[DayKey(day)] = day
	// only today and yesterday ever get asked about
	for k, d := range m.days {
		if day.Sub(d) > 48*time.Hour {
			delete(m.days, k)
		}
	}
	return nil
}

func (m *MemoryTracker) ExternalContentReceived(_ context.Context, day time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.days[DayKey(day)]
	return ok, nil
}
