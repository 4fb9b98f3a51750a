package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/content-webhook/config"
	"github.com/marcelsud/content-webhook/content"
	contentpg "github.com/marcelsud/content-webhook/content/postgres"
	"github.com/marcelsud/content-webhook/internal/http/chi"
	"github.com/marcelsud/content-webhook/metrics"
	"github.com/marcelsud/content-webhook/publish"
	"github.com/marcelsud/content-webhook/schedule"
	scheduleredis "github.com/marcelsud/content-webhook/schedule/redis"
	"github.com/marcelsud/content-webhook/webhook"
	"github.com/marcelsud/content-webhook/webhook/callback"
	webhookpg "github.com/marcelsud/content-webhook/webhook/postgres"
	"github.com/marcelsud/content-webhook/webhook/signature"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/*
 * Imports only go one way, down: the binary wires the business packages,
 * which import the storage packages
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	logger := chi.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		fmt.Println(err)
		return
	}
	policy, err := publish.ParseUnsupportedPolicy(cfg.UnsupportedContentPolicy)
	if err != nil {
		fmt.Println(err)
		return
	}
	var callbackSecret signature.Secret
	if cfg.CallbackSigningSecret != "" {
		callbackSecret, err = signature.ParseSecret(cfg.CallbackSigningSecret)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
	if cfg.WebhookSecret == "" {
		logger.Warn().Msg("WEBHOOK_SECRET is empty, every publish request will be rejected")
	}

	db, err := contentpg.Open(cfg.DatabaseURL, cfg.PostgresMaxOpenConns, cfg.PostgresMaxIdleConns, cfg.PostgresConnMaxLifeMinutes)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer db.Close()

	tracker, closeTracker, err := newTracker(cfg, logger)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer closeTracker()

	jobs := webhookpg.NewRepository(db)
	contentService := content.NewService(contentpg.NewRepository(db))
	dispatcher := callback.NewDispatcher(callback.Config{
		MaxAttempts:   cfg.CallbackMaxAttempts,
		BaseDelay:     cfg.CallbackBaseDelay,
		Timeout:       cfg.CallbackTimeout,
		SigningSecret: callbackSecret,
	}, logger)
	processor := publish.NewProcessor(jobs, contentService, tracker, dispatcher, publish.Config{
		SiteURL:           cfg.SiteURL,
		UnsupportedPolicy: policy,
		Location:          loc,
	}, logger)
	queue := publish.NewQueue(processor, cfg.WorkerConcurrency, logger)
	service := webhook.NewService(jobs, queue)

	exporter, err := metrics.NewOTelExporter(metrics.NewPostgresCollector(db, queue))
	if err != nil {
		fmt.Println(err)
		return
	}

	if cfg.SchedulerEnabled() {
		scheduler, err := schedule.NewScheduler(cfg.GenerationSchedule, loc, tracker,
			schedule.NewHTTPGenerator(cfg.GenerationTriggerURL, cfg.CallbackTimeout), logger)
		if err != nil {
			fmt.Println(err)
			return
		}
		scheduler.Start()
		defer scheduler.Stop(context.Background())
		logger.Info().Str("schedule", cfg.GenerationSchedule).Str("timezone", loc.String()).Msg("generation scheduler started")
	}

	r := chi.Handlers(ctx, logger, service, []byte(cfg.WebhookSecret), exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().Str("port", cfg.Port).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
	}

	// requests are no longer accepted, let running jobs and callbacks finish
	ctxDrain, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := queue.Shutdown(ctxDrain); err != nil {
		logger.Warn().Err(err).Int64("inFlight", queue.InFlight()).Msg("jobs still running at shutdown")
	}
	if err := exporter.Shutdown(ctxDrain); err != nil {
		fmt.Println(err)
	}
}

// newTracker uses Redis when configured so every instance sees the same days
func newTracker(cfg *config.Config, logger zerolog.Logger) (schedule.Tracker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("REDIS_ADDR not set, tracking external content in memory")
		return schedule.NewMemoryTracker(), func() {}, nil
	}
	t, err := scheduleredis.NewTracker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return t, func() { _ = t.Close(context.Background()) }, nil
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
