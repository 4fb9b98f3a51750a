package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the publish pipeline.
type Metrics struct {
	// Backlog maps content type to the number of jobs still queued
	Backlog map[string]int64 `json:"backlog"`

	// StatusCounts maps job status name to count of jobs in that status
	StatusCounts map[string]int64 `json:"status_counts"`

	// CallbackCounts maps callback status name to count of jobs
	CallbackCounts map[string]int64 `json:"callback_counts"`

	// Throughput represents jobs completed per time window
	Throughput ThroughputMetrics `json:"throughput"`

	// InFlight is the number of jobs this instance is running right now
	InFlight int64 `json:"in_flight"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// ThroughputMetrics represents jobs completed over different time windows.
type ThroughputMetrics struct {
	LastMinute         int64 `json:"last_minute"`
	LastFiveMinutes    int64 `json:"last_five_minutes"`
	LastFifteenMinutes int64 `json:"last_fifteen_minutes"`
}

// InFlightCounter reports how many jobs are running in the local worker queue
type InFlightCounter interface {
	InFlight() int64
}

// Collector defines the interface for collecting metrics from the publish pipeline.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetBacklog returns the number of queued jobs per content type
	GetBacklog(ctx context.Context) (map[string]int64, error)

	// GetStatusCounts returns the count of jobs by status
	GetStatusCounts(ctx context.Context) (map[string]int64, error)

	// GetCallbackCounts returns the count of jobs by callback status
	GetCallbackCounts(ctx context.Context) (map[string]int64, error)

	// GetThroughput returns jobs completed over time windows
	GetThroughput(ctx context.Context) (ThroughputMetrics, error)

	// GetInFlight returns the number of jobs running in this process
	GetInFlight(ctx context.Context) (int64, error)
}
