package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrorKind classifies request failures so callers can pick a recovery
// strategy (redirect to login, show a validation message, fall back to
// last-known-good state).
type ErrorKind string

const (
	// KindNetwork: no response at all (connectivity, DNS, timeout).
	KindNetwork ErrorKind = "network"
	// KindAuth: missing/expired/invalid token (401).
	KindAuth ErrorKind = "auth"
	// KindForbidden: business-rule rejection, e.g. role mismatch (403).
	KindForbidden ErrorKind = "forbidden"
	// KindValidation: backend rejected the payload (other 4xx).
	KindValidation ErrorKind = "validation"
	// KindServer: 5xx.
	KindServer ErrorKind = "server"
)

// Error is the failure type returned by every resource call.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsAuthError reports whether err is an authentication failure, which the
// caller should answer with a redirect to login.
func IsAuthError(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindAuth
}

// TokenSource supplies the bearer token for authenticated calls.
// An empty string means "no token"; the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the shared HTTP client under every resource client. It is
// stateless beyond the base URL and token source.
type Client struct {
	base  string
	http  *http.Client
	token TokenSource
}

func New(baseURL string, token TokenSource, timeout time.Duration) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: timeout},
		token: token,
	}
}

// NewWithHTTPClient is used by tests to inject an httptest client.
func NewWithHTTPClient(baseURL string, token TokenSource, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc, token: token}
}

// wireError is the backend's error body. Some endpoints use "message",
// older ones "error".
type wireError struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "encode request", cause: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if t := c.token.Token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "decode response", cause: err}
	}
	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var we wireError
	msg := http.StatusText(resp.StatusCode)
	if b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil && len(b) > 0 {
		if jsonErr := json.Unmarshal(b, &we); jsonErr == nil {
			if we.Message != "" {
				msg = we.Message
			} else if we.Err != "" {
				msg = we.Err
			}
		}
	}
	return &Error{Kind: classify(resp.StatusCode), Status: resp.StatusCode, Message: msg}
}

func classify(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindForbidden
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
