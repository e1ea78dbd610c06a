package tui

// Dialog is a modal confirmation box. Only one dialog can be open at a time:
// opening a new one while another is showing closes the previous dialog first,
// and its observer sees a zero DialogResult (treated as "dismissed").
type Dialog struct {
	Title        string
	Body         string
	ConfirmLabel string
	CancelLabel  string

	// Input dialogs carry a text field; confirming resolves with its value.
	Input bool
}

// DialogResult is delivered exactly once per opened dialog. Value is set only
// by input dialogs; a dismissal leaves it empty regardless of what was typed.
type DialogResult struct {
	Confirmed bool
	Value     string
}

// DialogClose pairs a result with the tag of the dialog it belongs to.
type DialogClose struct {
	Tag    string
	Result DialogResult
}

type openDialog struct {
	tag  string
	spec Dialog
}

// DialogHost owns the single dialog slot.
type DialogHost struct {
	current *openDialog
	focus   confirmFocus
}

type confirmFocus int

const (
	focusConfirm confirmFocus = iota
	focusCancel
)

func NewDialogHost() *DialogHost { return &DialogHost{} }

// Open shows d, replacing any dialog already on screen. When a previous dialog
// was preempted its close event (zero result) is returned so the caller can
// observe the dismissal before the new dialog is acted on.
func (h *DialogHost) Open(tag string, d Dialog) (preempted DialogClose, hadPrevious bool) {
	if d.ConfirmLabel == "" {
		d.ConfirmLabel = "OK"
	}
	if d.CancelLabel == "" {
		d.CancelLabel = "Cancel"
	}
	if h.current != nil {
		preempted = DialogClose{Tag: h.current.tag}
		hadPrevious = true
	}
	h.current = &openDialog{tag: tag, spec: d}
	h.focus = focusCancel
	return preempted, hadPrevious
}

// Resolve closes the active dialog with r. A dialog resolves at most once:
// calling Resolve with no dialog open reports ok=false.
func (h *DialogHost) Resolve(r DialogResult) (DialogClose, bool) {
	if h.current == nil {
		return DialogClose{}, false
	}
	closed := DialogClose{Tag: h.current.tag, Result: r}
	h.current = nil
	h.focus = focusCancel
	return closed, true
}

// Active returns the dialog currently on screen, if any.
func (h *DialogHost) Active() (Dialog, bool) {
	if h.current == nil {
		return Dialog{}, false
	}
	return h.current.spec, true
}

func (h *DialogHost) toggleFocus() {
	if h.focus == focusConfirm {
		h.focus = focusCancel
	} else {
		h.focus = focusConfirm
	}
}

func (h *DialogHost) focusedConfirm() bool { return h.focus == focusConfirm }
