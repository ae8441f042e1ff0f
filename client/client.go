// Package client is the HTTP client for the analyze relay.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vegan-analyze-service/image"
)

// Client calls the relay's analyze endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a relay client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Image string `json:"image"`
}

type analyzeResponse struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// Analyze posts a normalized PNG to the relay and returns the verdict text.
func (c *Client) Analyze(pngData []byte) (string, error) {
	enc := image.Encoded{MIME: "image/png", Data: pngData}
	body, err := json.Marshal(analyzeRequest{Image: enc.DataURI()})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+"/analyze", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to call the server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != "" {
			return "", fmt.Errorf("%s", parsed.Error)
		}
		return "", fmt.Errorf("server error (status %d)", resp.StatusCode)
	}
	return parsed.Result, nil
}
