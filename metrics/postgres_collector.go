package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marcelsud/content-webhook/webhook"
)

// PostgresCollector implements the Collector interface over the tracking tables
type PostgresCollector struct {
	db    *sql.DB
	queue InFlightCounter
}

// NewPostgresCollector creates a new collector. queue may be nil, in-flight is then always zero.
func NewPostgresCollector(db *sql.DB, queue InFlightCounter) *PostgresCollector {
	return &PostgresCollector{
		db:    db,
		queue: queue,
	}
}

// Collect gathers all metrics
func (c *PostgresCollector) Collect(ctx context.Context) (Metrics, error) {
	backlog, err := c.GetBacklog(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting backlog: %w", err)
	}

	statusCounts, err := c.GetStatusCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting status counts: %w", err)
	}

	callbackCounts, err := c.GetCallbackCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting callback counts: %w", err)
	}

	throughput, err := c.GetThroughput(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting throughput: %w", err)
	}

	inFlight, _ := c.GetInFlight(ctx)

	return Metrics{
		Backlog:        backlog,
		StatusCounts:   statusCounts,
		CallbackCounts: callbackCounts,
		Throughput:     throughput,
		InFlight:       inFlight,
		Timestamp:      time.Now(),
	}, nil
}

// GetBacklog returns the number of queued jobs per content type
func (c *PostgresCollector) GetBacklog(ctx context.Context) (map[string]int64, error) {
	query := "SELECT content_type, COUNT(*) FROM webhook_jobs WHERE status = $1 GROUP BY content_type"
	return c.countBy(ctx, query, nil, webhook.Queued.String())
}

// GetStatusCounts returns counts of jobs grouped by status. Every status is present, even at zero.
func (c *PostgresCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{
		webhook.Queued.String():     0,
		webhook.Processing.String(): 0,
		webhook.Completed.String():  0,
		webhook.Failed.String():     0,
	}
	return c.countBy(ctx, "SELECT status, COUNT(*) FROM webhook_jobs GROUP BY status", counts)
}

// GetCallbackCounts returns counts of jobs grouped by callback status
func (c *PostgresCollector) GetCallbackCounts(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{
		webhook.CallbackUndetermined.String(): 0,
		webhook.CallbackSuccess.String():      0,
		webhook.CallbackFailed.String():       0,
	}
	return c.countBy(ctx, "SELECT callback_status, COUNT(*) FROM webhook_jobs GROUP BY callback_status", counts)
}

// GetThroughput counts jobs completed in the last 1, 5 and 15 minutes
func (c *PostgresCollector) GetThroughput(ctx context.Context) (ThroughputMetrics, error) {
	now := time.Now().UTC()
	query := `
		SELECT
			COUNT(*) FILTER (WHERE completed_at >= $2),
			COUNT(*) FILTER (WHERE completed_at >= $3),
			COUNT(*)
		FROM webhook_jobs
		WHERE status = $1 AND completed_at >= $4
	`

	var t ThroughputMetrics
	err := c.db.QueryRowContext(ctx, query,
		webhook.Completed.String(),
		now.Add(-1*time.Minute),
		now.Add(-5*time.Minute),
		now.Add(-15*time.Minute),
	).Scan(&t.LastMinute, &t.LastFiveMinutes, &t.LastFifteenMinutes)
	if err != nil {
		return ThroughputMetrics{}, fmt.Errorf("counting completed jobs: %w", err)
	}

	return t, nil
}

// GetInFlight returns the number of jobs running in this process
func (c *PostgresCollector) GetInFlight(ctx context.Context) (int64, error) {
	if c.queue == nil {
		return 0, nil
	}
	return c.queue.InFlight(), nil
}

func (c *PostgresCollector) countBy(ctx context.Context, query string, counts map[string]int64, args ...any) (map[string]int64, error) {
	if counts == nil {
		counts = make(map[string]int64)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting jobs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}

	return counts, nil
}
