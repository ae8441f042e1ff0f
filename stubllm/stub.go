package stubllm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Client is a deterministic, no-network provider stub intended for CI and
// local end-to-end tests. The verdict alternates per input so both answer
// branches get exercised.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

// AnalyzeImage returns a deterministic verdict keyed on the image bytes.
func (c *Client) AnalyzeImage(mimeType string, imageData []byte) (string, error) {
	sum := sha256.Sum256(imageData)
	short := hex.EncodeToString(sum[:4])

	if sum[0]%2 == 0 {
		return fmt.Sprintf("Ja, das Produkt ist vegan. (Stub-Analyse %s, %s)", short, mimeType), nil
	}
	return fmt.Sprintf("Nein, das Produkt ist nicht vegan. (Stub-Analyse %s, %s)", short, mimeType), nil
}
