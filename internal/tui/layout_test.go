package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePanePadsAndTruncates(t *testing.T) {
	out := normalizePane("short\nthis line is definitely longer than ten", 10, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want 4", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 10 {
			t.Fatalf("line %d width = %d, want 10 (%q)", i, w, ln)
		}
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("overlong line not truncated with ellipsis: %q", lines[1])
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("hello", 10); got != "hello" {
		t.Fatalf("short string altered: %q", got)
	}
	got := truncateText("hello world", 8)
	if w := xansi.StringWidth(got); w > 8 {
		t.Fatalf("truncated width = %d", w)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}
	if truncateText("anything", 0) != "" {
		t.Fatalf("zero width must yield empty string")
	}
}
