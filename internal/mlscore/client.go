// Package mlscore fetches an impulse probability from an external model
// service. The engine blends the probability into the rule score; it never
// replaces it, and a missing or failing service degrades to rule-only.
package mlscore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

type scoreRequest struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Hour     int     `json:"hour"`
	Weekday  int     `json:"weekday"`
}

type scoreResponse struct {
	Probability float64 `json:"probability"`
}

// NewClient returns nil when no endpoint is configured, so callers can
// treat the whole integration as optional.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		return nil
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

// Probability asks the model service for an impulse probability in [0,1].
func (c *Client) Probability(ctx context.Context, amount float64, category string, ts time.Time) (*float64, error) {
	reqBody := scoreRequest{
		Amount:   amount,
		Category: category,
		Hour:     ts.Hour(),
		Weekday:  int(ts.Weekday()),
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/score", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model service error (status %d): %s", resp.StatusCode, string(body))
	}

	var scoreResp scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&scoreResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if scoreResp.Probability < 0 || scoreResp.Probability > 1 {
		return nil, fmt.Errorf("model probability out of range: %f", scoreResp.Probability)
	}
	return &scoreResp.Probability, nil
}
