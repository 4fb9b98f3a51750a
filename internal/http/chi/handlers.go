package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/content-webhook/webhook"
	"github.com/rs/zerolog"
)

const requestTimeout = 30 * time.Second

// Handlers builds the HTTP API. metrics may be nil.
func Handlers(ctx context.Context, logger zerolog.Logger, service webhook.UseCase, secret []byte, metrics http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/api/v1/content/publish", func(r chi.Router) {
		r.Use(requireSignature(secret, time.Now))
		r.Method(http.MethodPost, "/", postPublish(service))
		r.Method(http.MethodGet, "/{trackingId}", getPublishStatus(service))
	})

	return r
}

// NewLogger returns the structured logger shared by the HTTP layer and the background workers
func NewLogger(level string) zerolog.Logger {
	return httplog.NewLogger("content-webhook", httplog.Options{
		JSON:     true,
		LogLevel: level,
		Concise:  true,
	})
}
