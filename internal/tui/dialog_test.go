package tui

import "testing"

func TestDialogResolveDeliversOnce(t *testing.T) {
	h := NewDialogHost()
	if _, had := h.Open("delete-task", Dialog{Title: "Delete task"}); had {
		t.Fatalf("first Open must not report a preempted dialog")
	}

	closed, ok := h.Resolve(DialogResult{Confirmed: true})
	if !ok || closed.Tag != "delete-task" || !closed.Result.Confirmed {
		t.Fatalf("unexpected close event: %+v ok=%v", closed, ok)
	}

	if _, ok := h.Resolve(DialogResult{Confirmed: true}); ok {
		t.Fatalf("second Resolve must be a no-op")
	}
	if _, active := h.Active(); active {
		t.Fatalf("dialog still active after Resolve")
	}
}

func TestOpeningSecondDialogDismissesFirst(t *testing.T) {
	h := NewDialogHost()
	h.Open("first", Dialog{Title: "First"})

	preempted, had := h.Open("second", Dialog{Title: "Second"})
	if !had {
		t.Fatalf("second Open must report the preempted dialog")
	}
	if preempted.Tag != "first" {
		t.Fatalf("preempted tag = %q, want first", preempted.Tag)
	}
	if preempted.Result.Confirmed {
		t.Fatalf("preempted dialog must close unconfirmed")
	}

	// Only the second dialog is on screen, and resolving settles it, not the first.
	active, ok := h.Active()
	if !ok || active.Title != "Second" {
		t.Fatalf("active dialog = %+v, ok=%v", active, ok)
	}
	closed, ok := h.Resolve(DialogResult{Confirmed: true})
	if !ok || closed.Tag != "second" {
		t.Fatalf("resolve settled %q, want second", closed.Tag)
	}
}

func TestInputDialogCarriesValueOnlyWhenConfirmed(t *testing.T) {
	h := NewDialogHost()
	h.Open("invite-email", Dialog{Title: "Invite member", Input: true})

	closed, ok := h.Resolve(DialogResult{Confirmed: true, Value: "dev@startup.dev"})
	if !ok || !closed.Result.Confirmed || closed.Result.Value != "dev@startup.dev" {
		t.Fatalf("unexpected close event: %+v ok=%v", closed, ok)
	}

	// A preempted input dialog closes with no value, whatever was typed.
	h.Open("invite-email", Dialog{Title: "Invite member", Input: true})
	preempted, had := h.Open("delete-task", Dialog{Title: "Delete task"})
	if !had || preempted.Result.Confirmed || preempted.Result.Value != "" {
		t.Fatalf("preempted input dialog must close empty: %+v", preempted)
	}
}

func TestDialogDefaultLabels(t *testing.T) {
	h := NewDialogHost()
	h.Open("x", Dialog{Title: "t"})
	d, _ := h.Active()
	if d.ConfirmLabel != "OK" || d.CancelLabel != "Cancel" {
		t.Fatalf("default labels not applied: %+v", d)
	}
}

func TestDialogFocusStartsOnCancel(t *testing.T) {
	h := NewDialogHost()
	h.Open("x", Dialog{Title: "t"})
	if h.focusedConfirm() {
		t.Fatalf("focus must start on cancel")
	}
	h.toggleFocus()
	if !h.focusedConfirm() {
		t.Fatalf("toggle did not move focus to confirm")
	}
}
