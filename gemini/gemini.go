package gemini

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vegan-analyze-service/llm"
)

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client represents a Google Gemini API client.
type Client struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	http      *http.Client
}

// NewClient creates a new Gemini client.
func NewClient(apiKey, model string, maxTokens int, timeout time.Duration) *Client {
	return &Client{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		baseURL:   "https://generativelanguage.googleapis.com",
		http:      &http.Client{Timeout: timeout},
	}
}

// SourceName identifies this provider in logs.
func (c *Client) SourceName() string {
	return "Gemini"
}

// AnalyzeImage sends a single-turn generateContent request with the fixed
// prompt and the inlined image, and returns the model's text verbatim.
func (c *Client) AnalyzeImage(mimeType string, imageData []byte) (string, error) {
	reqBody := geminiRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: llm.Prompt},
					{InlineData: &inlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(imageData),
					}},
				},
			},
		},
		GenerationConfig: generationConfig{MaxOutputTokens: c.maxTokens},
	}
	return c.generateContent(reqBody)
}

// generateContent sends the request to v1beta, falling back to v1 only on
// transport errors, 5xx responses and 404 (model absent from that API
// version). Any other 4xx is final: the request is never re-sent. The two
// endpoints bound the client to a single retry.
func (c *Client) generateContent(body geminiRequest) (string, error) {
	endpoints := []string{
		fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey),
		fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for _, ep := range endpoints {
		req, err := http.NewRequest(http.MethodPost, ep, bytes.NewBuffer(data))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to send request: %w", err)
			continue
		}
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusNotFound {
			lastErr = fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
		}

		var gr geminiResponse
		if err := json.Unmarshal(bodyBytes, &gr); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if len(gr.Candidates) == 0 {
			return "", fmt.Errorf("no candidates in response")
		}
		for _, p := range gr.Candidates[0].Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
		return "", fmt.Errorf("no text part in response")
	}
	return "", lastErr
}
