package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/marcelsud/content-webhook/webhook"
	"github.com/marcelsud/content-webhook/webhook/signature"
	"github.com/rs/zerolog"
)

const (
	// MaxAttempts is the most deliveries a single notification ever gets
	MaxAttempts        = 3
	DefaultMaxAttempts = MaxAttempts
	DefaultBaseDelay   = 2 * time.Second
	DefaultTimeout     = 10 * time.Second

	userAgent = "content-webhook/1.0"
)

// Config controls delivery. Zero values fall back to the defaults above, MaxAttempts is capped.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Timeout     time.Duration
	// SigningSecret, when set, adds Standard Webhooks headers to every attempt
	SigningSecret signature.Secret
}

// Result is what gets recorded on the job after delivery
type Result struct {
	Status   webhook.CallbackStatus
	Attempts int
	// Delays holds the wait before each retry
	Delays  []time.Duration
	LastErr error
}

// Dispatcher POSTs notifications with exponential backoff between attempts
type Dispatcher struct {
	client *http.Client
	cfg    Config
	logger zerolog.Logger
}

func NewDispatcher(cfg Config, logger zerolog.Logger) *Dispatcher {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.MaxAttempts > MaxAttempts {
		logger.Warn().Int("configured", cfg.MaxAttempts).Int("max", MaxAttempts).Msg("callback attempts capped")
		cfg.MaxAttempts = MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Dispatcher{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

/* Deliver sends n to url. It stops at the first 2xx response and gives up after MaxAttempts.
 * The wait before retry k is BaseDelay * 2^(k-1).
 */
func (d *Dispatcher) Deliver(ctx context.Context, url string, n Notification) Result {
	body, err := json.Marshal(n)
	if err != nil {
		return Result{Status: webhook.CallbackFailed, LastErr: fmt.Errorf("marshaling notification: %w", err)}
	}

	msgID := "msg_" + uuid.NewString()
	result := Result{}
	op := func() error {
		result.Attempts++
		return d.post(ctx, url, msgID, body)
	}
	notify := func(err error, wait time.Duration) {
		result.Delays = append(result.Delays, wait)
		d.logger.Warn().
			Err(err).
			Str("trackingId", n.TrackingID).
			Int("attempt", result.Attempts).
			Dur("retryIn", wait).
			Msg("callback attempt failed")
	}

	err = backoff.RetryNotify(op, d.policy(ctx), notify)
	if err != nil {
		result.Status = webhook.CallbackFailed
		result.LastErr = err
		d.logger.Error().
			Err(err).
			Str("trackingId", n.TrackingID).
			Int("attempts", result.Attempts).
			Msg("callback delivery failed")
		return result
	}

	result.Status = webhook.CallbackSuccess
	d.logger.Info().
		Str("trackingId", n.TrackingID).
		Int("attempts", result.Attempts).
		Msg("callback delivered")
	return result
}

func (d *Dispatcher) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.cfg.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = d.cfg.BaseDelay << uint(d.cfg.MaxAttempts)
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(d.cfg.MaxAttempts-1)), ctx)
}

func (d *Dispatcher) post(ctx context.Context, url, msgID string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("building callback request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if !d.cfg.SigningSecret.IsZero() {
		if err := signature.SetHeaders(req.Header, d.cfg.SigningSecret, msgID, time.Now(), body); err != nil {
			return backoff.Permanent(err)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending callback: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("callback returned status %d", resp.StatusCode)
	}
	return nil
}
