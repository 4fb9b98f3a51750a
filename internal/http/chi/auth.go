package chi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/marcelsud/content-webhook/webhook/signature"
)

// maxBodyBytes bounds what is read before the signature is checked
const maxBodyBytes = 1 << 20

/* requireSignature authenticates every request against the shared secret.
 * The body is read once, verified, and put back for the next handler.
 */
func requireSignature(secret []byte, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeFailure(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
					return
				}
				writeFailure(w, http.StatusBadRequest, "failed to read request body", nil)
				return
			}
			_ = r.Body.Close()

			sig := r.Header.Get(signature.HeaderSignature)
			ts := r.Header.Get(signature.HeaderTimestamp)
			if err := signature.VerifyRequest(secret, sig, ts, body, now()); err != nil {
				status, message, fields := authFailure(err)
				writeFailure(w, status, message, fields)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func authFailure(err error) (int, string, []fieldError) {
	if errors.Is(err, signature.ErrSecretNotConfigured) {
		return http.StatusInternalServerError, "webhook secret is not configured", nil
	}

	var fields []fieldError
	if errors.Is(err, signature.ErrMissingSignature) {
		fields = append(fields, fieldError{Field: signature.HeaderSignature, Error: "header is required"})
	}
	if errors.Is(err, signature.ErrMissingTimestamp) {
		fields = append(fields, fieldError{Field: signature.HeaderTimestamp, Error: "header is required"})
	}
	if len(fields) > 0 {
		return http.StatusUnauthorized, "missing authentication headers", fields
	}

	switch {
	case errors.Is(err, signature.ErrInvalidTimestamp), errors.Is(err, signature.ErrTimestampExpired):
		return http.StatusUnauthorized, "invalid request timestamp",
			[]fieldError{{Field: signature.HeaderTimestamp, Error: err.Error()}}
	default:
		return http.StatusUnauthorized, "invalid signature",
			[]fieldError{{Field: signature.HeaderSignature, Error: err.Error()}}
	}
}
