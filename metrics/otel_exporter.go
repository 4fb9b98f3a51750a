package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	meter         metric.Meter
	backlogGauge  metric.Int64ObservableGauge
	statusGauge   metric.Int64ObservableGauge
	callbackGauge metric.Int64ObservableGauge
	throughput    metric.Int64ObservableGauge
	inFlightGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"content-webhook",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.backlogGauge, err = oe.meter.Int64ObservableGauge(
		"publish.jobs.backlog",
		metric.WithDescription("Number of queued publish jobs per content type"),
		metric.WithUnit("{jobs}"),
		metric.WithInt64Callback(oe.observeBacklog),
	)
	if err != nil {
		return fmt.Errorf("creating backlog gauge: %w", err)
	}

	oe.statusGauge, err = oe.meter.Int64ObservableGauge(
		"publish.jobs.status",
		metric.WithDescription("Number of publish jobs by status"),
		metric.WithUnit("{jobs}"),
		metric.WithInt64Callback(oe.observeStatusCounts),
	)
	if err != nil {
		return fmt.Errorf("creating status count gauge: %w", err)
	}

	oe.callbackGauge, err = oe.meter.Int64ObservableGauge(
		"publish.callbacks.status",
		metric.WithDescription("Number of publish jobs by callback status"),
		metric.WithUnit("{jobs}"),
		metric.WithInt64Callback(oe.observeCallbackCounts),
	)
	if err != nil {
		return fmt.Errorf("creating callback count gauge: %w", err)
	}

	oe.throughput, err = oe.meter.Int64ObservableGauge(
		"publish.jobs.throughput",
		metric.WithDescription("Number of publish jobs completed over time window"),
		metric.WithUnit("{jobs}"),
		metric.WithInt64Callback(oe.observeThroughput),
	)
	if err != nil {
		return fmt.Errorf("creating throughput gauge: %w", err)
	}

	oe.inFlightGauge, err = oe.meter.Int64ObservableGauge(
		"publish.jobs.in_flight",
		metric.WithDescription("Number of publish jobs running in this instance"),
		metric.WithUnit("{jobs}"),
		metric.WithInt64Callback(oe.observeInFlight),
	)
	if err != nil {
		return fmt.Errorf("creating in-flight gauge: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeBacklog(ctx context.Context, observer metric.Int64Observer) error {
	backlog, err := oe.collector.GetBacklog(ctx)
	if err != nil {
		return err
	}

	for contentType, n := range backlog {
		observer.Observe(n, metric.WithAttributes(
			attribute.String("content.type", contentType),
		))
	}

	return nil
}

func (oe *OTelExporter) observeStatusCounts(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetStatusCounts(ctx)
	if err != nil {
		return err
	}

	for status, n := range counts {
		observer.Observe(n, metric.WithAttributes(
			attribute.String("job.status", status),
		))
	}

	return nil
}

func (oe *OTelExporter) observeCallbackCounts(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetCallbackCounts(ctx)
	if err != nil {
		return err
	}

	for status, n := range counts {
		observer.Observe(n, metric.WithAttributes(
			attribute.String("callback.status", status),
		))
	}

	return nil
}

func (oe *OTelExporter) observeThroughput(ctx context.Context, observer metric.Int64Observer) error {
	throughput, err := oe.collector.GetThroughput(ctx)
	if err != nil {
		return err
	}

	observer.Observe(throughput.LastMinute, metric.WithAttributes(
		attribute.String("time.window", "1m"),
	))
	observer.Observe(throughput.LastFiveMinutes, metric.WithAttributes(
		attribute.String("time.window", "5m"),
	))
	observer.Observe(throughput.LastFifteenMinutes, metric.WithAttributes(
		attribute.String("time.window", "15m"),
	))

	return nil
}

func (oe *OTelExporter) observeInFlight(ctx context.Context, observer metric.Int64Observer) error {
	n, err := oe.collector.GetInFlight(ctx)
	if err != nil {
		return err
	}
	observer.Observe(n)
	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
