package tui

// Notice is a transient status line (success or error feedback). The host
// holds at most one notice: showing a new one replaces the current notice and
// restarts the expiry clock, so a notice shown just before another never blanks
// the newer one early.
type Notice struct {
	Text    string
	IsError bool
}

type NoticeHost struct {
	current *Notice
	seq     int
}

func NewNoticeHost() *NoticeHost { return &NoticeHost{} }

// Show replaces the current notice and returns the sequence number the expiry
// timer must carry. An expiry for an older sequence is ignored.
func (h *NoticeHost) Show(text string, isError bool) int {
	h.seq++
	h.current = &Notice{Text: text, IsError: isError}
	return h.seq
}

// Expire clears the notice only if seq identifies the notice still showing.
func (h *NoticeHost) Expire(seq int) {
	if h.current != nil && seq == h.seq {
		h.current = nil
	}
}

// Current returns the notice on screen, if any.
func (h *NoticeHost) Current() (Notice, bool) {
	if h.current == nil {
		return Notice{}, false
	}
	return *h.current, true
}
