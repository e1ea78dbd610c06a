package tui

import "testing"

func TestNoticeExpires(t *testing.T) {
	h := NewNoticeHost()
	seq := h.Show("saved", false)
	if n, ok := h.Current(); !ok || n.Text != "saved" {
		t.Fatalf("notice not showing: %+v ok=%v", n, ok)
	}
	h.Expire(seq)
	if _, ok := h.Current(); ok {
		t.Fatalf("notice survived its expiry")
	}
}

func TestNewerNoticeIgnoresStaleExpiry(t *testing.T) {
	h := NewNoticeHost()
	first := h.Show("first", false)
	h.Show("second", true)

	// The first notice's timer fires after it was replaced; the replacement
	// must keep its full display time.
	h.Expire(first)
	n, ok := h.Current()
	if !ok || n.Text != "second" || !n.IsError {
		t.Fatalf("stale expiry cleared the newer notice: %+v ok=%v", n, ok)
	}
}
