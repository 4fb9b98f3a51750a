package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/marcelsud/content-webhook/config"
	"github.com/marcelsud/content-webhook/webhook/signature"
)

/* sign-request - signing helpers for manual testing
 * Usage:
 *   go run cmd/sign-request/main.go body.json [url]
 *       signs a publish request body with WEBHOOK_SECRET and prints a curl command
 *   go run cmd/sign-request/main.go secret
 *       generates a whsec_ secret for CALLBACK_SIGNING_SECRET
 *   go run cmd/sign-request/main.go verify-callback body.json <webhook-id> <webhook-timestamp> <webhook-signature>
 *       checks a received callback against CALLBACK_SIGNING_SECRET
 * Exit codes: 0 = ok, 1 = failed
 */

const secretBytes = 32

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "secret":
		newSecret()
	case "verify-callback":
		verifyCallback(os.Args[2:])
	default:
		signBody(os.Args[1:])
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s body.json [url] | secret | verify-callback body.json id timestamp signature\n", os.Args[0])
	os.Exit(1)
}

func loadConfig() *config.Config {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func readBody(path string) []byte {
	body, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	return body
}

func signBody(args []string) {
	bodyFile := args[0]
	cfg := loadConfig()
	if cfg.WebhookSecret == "" {
		fmt.Fprintln(os.Stderr, "❌ WEBHOOK_SECRET is not set")
		os.Exit(1)
	}

	url := "http://localhost:" + cfg.Port + "/api/v1/content/publish"
	if len(args) > 1 {
		url = args[1]
	}
	body := readBody(bodyFile)

	ts := signature.Timestamp(time.Now())
	sig := signature.SignRequest([]byte(cfg.WebhookSecret), ts, body)

	fmt.Printf("%s: %s\n", signature.HeaderTimestamp, ts)
	fmt.Printf("%s: sha256=%s\n", signature.HeaderSignature, sig)
	fmt.Printf("\n✓ Valid for %s\n\n", signature.MaxClockSkew)
	fmt.Printf("curl -sS -X POST %q \\\n", url)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -H '%s: %s' \\\n", signature.HeaderTimestamp, ts)
	fmt.Printf("  -H '%s: sha256=%s' \\\n", signature.HeaderSignature, sig)
	fmt.Printf("  --data-binary @%s\n", bodyFile)
}

func newSecret() {
	secret, err := signature.GenerateSecret(secretBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("CALLBACK_SIGNING_SECRET=%s\n", secret)
}

func verifyCallback(args []string) {
	if len(args) != 4 {
		usage()
	}
	body := readBody(args[0])
	msgID, rawTS, header := args[1], args[2], args[3]

	cfg := loadConfig()
	secret, err := signature.ParseSecret(cfg.CallbackSigningSecret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ CALLBACK_SIGNING_SECRET: %v\n", err)
		os.Exit(1)
	}

	unix, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s must be unix seconds: %v\n", signature.HeaderWebhookTimestamp, err)
		os.Exit(1)
	}
	sigs, err := signature.ParseSignatureHeader(header)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	for _, sig := range sigs {
		ok, err := signature.Verify(secret, msgID, time.Unix(unix, 0), body, sig)
		if err != nil {
			fmt.Printf("⚠️  %s: %v\n", sig, err)
			continue
		}
		if ok {
			fmt.Printf("✓ Signature valid (%s)\n", sig.Version)
			return
		}
	}
	fmt.Println("❌ No signature matched")
	os.Exit(1)
}
