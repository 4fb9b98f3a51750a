package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	// HeaderSignature carries the hex encoded HMAC-SHA256 of timestamp+body
	HeaderSignature = "X-Signature"

	// HeaderTimestamp carries the signing time as epoch milliseconds
	HeaderTimestamp = "X-Request-Timestamp"

	// MaxClockSkew is how far a request timestamp may drift from the server clock
	MaxClockSkew = 5 * time.Minute

	hexPrefix = "sha256="
)

var (
	ErrSecretNotConfigured = errors.New("webhook secret not configured")
	ErrMissingSignature    = errors.New("missing signature")
	ErrMissingTimestamp    = errors.New("missing timestamp")
	ErrInvalidTimestamp    = errors.New("timestamp must be epoch milliseconds")
	ErrTimestampExpired    = errors.New("timestamp outside the allowed window")
	ErrSignatureMismatch   = errors.New("signature mismatch")
)

// Timestamp formats t the way HeaderTimestamp expects it
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// SignRequest returns the hex HMAC-SHA256 of timestamp followed by the raw body
func SignRequest(secret []byte, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

/* VerifyRequest authenticates an inbound request.
 * Freshness is checked before the signature so a stale request fails even when correctly signed.
 * When both headers are missing the returned error matches both ErrMissingSignature and ErrMissingTimestamp.
 */
func VerifyRequest(secret []byte, sig, timestamp string, body []byte, now time.Time) error {
	if len(secret) == 0 {
		return ErrSecretNotConfigured
	}

	sig = strings.TrimSpace(sig)
	timestamp = strings.TrimSpace(timestamp)
	var missing []error
	if sig == "" {
		missing = append(missing, ErrMissingSignature)
	}
	if timestamp == "" {
		missing = append(missing, ErrMissingTimestamp)
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	ms, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	skew := now.Sub(time.UnixMilli(ms))
	if skew < 0 {
		skew = -skew
	}
	if skew > MaxClockSkew {
		return ErrTimestampExpired
	}

	given, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(sig), hexPrefix))
	if err != nil {
		return ErrSignatureMismatch
	}
	expected, _ := hex.DecodeString(SignRequest(secret, timestamp, body))

	// constant-time comparison
	if !hmac.Equal(given, expected) {
		return ErrSignatureMismatch
	}
	return nil
}
