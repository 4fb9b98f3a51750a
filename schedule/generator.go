package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGenerator asks an external service to generate the day's content
type HTTPGenerator struct {
	URL    string
	client *http.Client
}

func NewHTTPGenerator(url string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type generationRequest struct {
	Date    string `json:"date"`
	Trigger string `json:"trigger"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, day time.Time) error {
	body, err := json.Marshal(generationRequest{Date: DayKey(day), Trigger: "scheduled"})
	if err != nil {
		return fmt.Errorf("marshaling generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending generation request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("generation trigger returned status %d", resp.StatusCode)
	}
	return nil
}
