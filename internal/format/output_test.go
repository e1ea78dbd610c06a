package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []int{1, 2}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"data":[1,2]}` {
		t.Fatalf("unexpected json: %q", got)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	rows := []map[string]any{
		{"id": 1, "name": "Apollo"},
		{"id": 2, "name": "Gemini"},
	}
	if err := Write(&buf, rows, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "id") || !strings.Contains(out, "Apollo") || !strings.Contains(out, "Gemini") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, 1, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
