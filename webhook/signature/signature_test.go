package signature

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	t.Run("success - minimum size", func(t *testing.T) {
		secret, err := GenerateSecret(MinSecretBytes)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(secret.String(), SecretPrefix))
		assert.Equal(t, MinSecretBytes, len(secret.Bytes()))
	})

	t.Run("error - too small", func(t *testing.T) {
		_, err := GenerateSecret(MinSecretBytes - 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret size must be between")
	})

	t.Run("error - too large", func(t *testing.T) {
		_, err := GenerateSecret(MaxSecretBytes + 1)
		require.Error(t, err)
	})

	t.Run("randomness - generates different secrets", func(t *testing.T) {
		secret1, err1 := GenerateSecret(32)
		secret2, err2 := GenerateSecret(32)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, secret1.String(), secret2.String())
	})
}

func TestParseSecret(t *testing.T) {
	t.Run("success - valid secret", func(t *testing.T) {
		original, err := GenerateSecret(32)
		require.NoError(t, err)

		parsed, err := ParseSecret(original.String())
		require.NoError(t, err)
		assert.Equal(t, original.Bytes(), parsed.Bytes())
		assert.False(t, parsed.IsZero())
	})

	t.Run("error - missing prefix", func(t *testing.T) {
		_, err := ParseSecret("dGVzdHNlY3JldA==")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must start with")
	})

	t.Run("error - invalid base64", func(t *testing.T) {
		_, err := ParseSecret(SecretPrefix + "not-valid-base64!!!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding base64")
	})

	t.Run("error - secret too small", func(t *testing.T) {
		_, err := ParseSecret(SecretPrefix + "dGVzdA==")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret size must be between")
	})

	t.Run("zero value", func(t *testing.T) {
		assert.True(t, Secret{}.IsZero())
	})
}

func TestSignAndVerify(t *testing.T) {
	secret, err := GenerateSecret(32)
	require.NoError(t, err)

	msgID := "msg_3f1c"
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	body := []byte(`{"status":"success","trackingId":"t-1"}`)

	t.Run("success - valid signature", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, body)
		require.NoError(t, err)
		assert.Equal(t, SignatureVersion, sig.Version)

		valid, err := Verify(secret, msgID, timestamp, body, sig)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("failure - wrong secret", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, body)
		require.NoError(t, err)

		other, err := GenerateSecret(32)
		require.NoError(t, err)

		valid, err := Verify(other, msgID, timestamp, body, sig)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("failure - wrong payload", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, body)
		require.NoError(t, err)

		valid, err := Verify(secret, msgID, timestamp, []byte(`{"status":"failed"}`), sig)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("error - message ID contains period", func(t *testing.T) {
		_, err := Sign(secret, "msg.with.periods", timestamp, body)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not contain '.'")
	})

	t.Run("error - unsupported version", func(t *testing.T) {
		_, err := Verify(secret, msgID, timestamp, body, Signature{Version: "v2", Signature: "dGVzdA=="})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported signature version")
	})
}

func TestParseSignatureHeader(t *testing.T) {
	t.Run("success - multiple signatures", func(t *testing.T) {
		sigs, err := ParseSignatureHeader("  v1,dGVzdA==   v1a,YW5vdGhlcg==  ")
		require.NoError(t, err)
		require.Len(t, sigs, 2)
		assert.Equal(t, "v1", sigs[0].Version)
		assert.Equal(t, "YW5vdGhlcg==", sigs[1].Signature)
	})

	t.Run("error - empty header", func(t *testing.T) {
		_, err := ParseSignatureHeader("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("error - invalid signature format", func(t *testing.T) {
		_, err := ParseSignatureHeader("invalid")
		require.Error(t, err)
	})
}

func TestSetHeaders(t *testing.T) {
	secret, err := GenerateSecret(32)
	require.NoError(t, err)
	timestamp := time.Unix(1700000000, 0)
	body := []byte(`{"status":"success"}`)

	h := http.Header{}
	require.NoError(t, SetHeaders(h, secret, "msg_1", timestamp, body))

	assert.Equal(t, "msg_1", h.Get(HeaderWebhookID))
	assert.Equal(t, "1700000000", h.Get(HeaderWebhookTimestamp))

	sigs, err := ParseSignatureHeader(h.Get(HeaderWebhookSignature))
	require.NoError(t, err)
	valid, err := Verify(secret, "msg_1", timestamp, body, sigs[0])
	require.NoError(t, err)
	assert.True(t, valid)
}
