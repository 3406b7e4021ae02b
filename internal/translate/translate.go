// Package translate provides a minimal client for the public Google
// translate endpoint.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// Client translates text between languages.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a translation client.
func New() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewWithEndpoint creates a translation client against a custom endpoint.
func NewWithEndpoint(endpoint string) *Client {
	c := New()
	c.endpoint = endpoint
	return c
}

// Translate translates text into the target language, detecting the source
// language automatically.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: status %d: %s", resp.StatusCode, data)
	}

	return parseTranslation(data)
}

// parseTranslation extracts translated segments from the endpoint's nested
// array response: [[["segment","source",...],...],...].
func parseTranslation(data []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode translation: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decode translation segments: %w", err)
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var translated string
		if err := json.Unmarshal(segment[0], &translated); err != nil {
			continue
		}
		sb.WriteString(translated)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no translated segments in response")
	}
	return sb.String(), nil
}
