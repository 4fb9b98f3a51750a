//go:build integration

package webhook

import (
	"fmt"
	"testing"
	"time"
)

// GenerateKey generates a unique idempotency key for testing
func GenerateKey(t *testing.T, index int) string {
	t.Helper()
	return fmt.Sprintf("test-key-%d-%d", index, time.Now().UnixNano())
}
