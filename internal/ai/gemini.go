// Package ai talks to the external generative-text endpoint used by the
// analyst chat. The wire format is the Gemini generateContent shape:
// request {contents:[{parts:[{text}]}]}, response {candidates:[...]}.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FallbackReply is shown when the service answers successfully but returns no
// candidates.
const FallbackReply = "No response from AI."

type Client struct {
	endpoint string
	key      string
	http     *http.Client
}

func New(endpoint, key string, timeout time.Duration) *Client {
	return &Client{endpoint: endpoint, key: key, http: &http.Client{Timeout: timeout}}
}

// NewWithHTTPClient is used by tests.
func NewWithHTTPClient(endpoint, key string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{endpoint: endpoint, key: key, http: hc}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the first candidate's first part.
// An empty candidate list is not an error; it yields FallbackReply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode prompt: %w", err)
	}

	url := c.endpoint
	if c.key != "" {
		url += "?key=" + c.key
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ai endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ai endpoint returned status %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ai response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return FallbackReply, nil
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return FallbackReply, nil
	}
	return text, nil
}
