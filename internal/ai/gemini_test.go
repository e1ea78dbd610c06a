package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, "test-key", srv.Client())
}

func TestGenerateReturnsFirstCandidate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key missing from query")
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"first"},{"text":"second"}]}}]}`))
	})
	got, err := c.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "first" {
		t.Fatalf("expected first part of first candidate, got %q", got)
	}
}

func TestGenerateRequestShape(t *testing.T) {
	var body string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		body = string(b)
		w.Write([]byte(`{"candidates":[]}`))
	})
	if _, err := c.Generate(context.Background(), "analyze this"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := `{"contents":[{"parts":[{"text":"analyze this"}]}]}`
	if body != want {
		t.Fatalf("request body = %q, want %q", body, want)
	}
}

func TestGenerateNoCandidatesYieldsFallback(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	got, err := c.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != FallbackReply {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGenerateServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota"}}`))
	})
	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error on non-200")
	}
}
