// Package chat implements the AI analyst transcript: a sequential,
// single-flight conversation with the external text endpoint, with optional
// persistence that never blocks or alters the transcript.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"liftoff-cli/internal/model"
)

// ErrorReply is appended as a synthetic assistant message when the round-trip
// fails; input is re-enabled afterwards.
const ErrorReply = "Error communicating with AI Analyst."

// ErrBusy is returned when a send is attempted while another round-trip is
// outstanding.
var ErrBusy = errors.New("a message is already in flight")

// Generator produces the assistant reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Persister stores transcript entries. May be nil (persistence disabled).
type Persister interface {
	SaveChatMessage(ctx context.Context, text string, sender model.ChatSender) error
}

// Analyst accumulates the local transcript. The transcript is append-only:
// persistence failures surface through notify but never roll anything back.
type Analyst struct {
	mu       sync.Mutex
	messages []model.ChatMessage
	busy     bool

	gen     Generator
	persist Persister
	notify  func(error)

	persistWG sync.WaitGroup
}

// New creates an analyst. persist may be nil; notify may be nil.
func New(gen Generator, persist Persister, notify func(error)) *Analyst {
	if notify == nil {
		notify = func(error) {}
	}
	return &Analyst{gen: gen, persist: persist, notify: notify}
}

// Busy reports whether a round-trip is outstanding; the UI disables the send
// control while true.
func (a *Analyst) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Messages returns a copy of the transcript.
func (a *Analyst) Messages() []model.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.ChatMessage, len(a.messages))
	copy(out, a.messages)
	return out
}

// Send runs one round-trip: the user message is appended immediately, the
// reply (or ErrorReply) is appended once the call settles. Blank input is
// ignored. A second Send while one is outstanding returns ErrBusy.
func (a *Analyst) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return ErrBusy
	}
	a.busy = true
	a.messages = append(a.messages, model.ChatMessage{Message: text, Sender: model.ChatSenderUser})
	a.mu.Unlock()

	a.persistAsync(text, model.ChatSenderUser)

	reply, err := a.gen.Generate(ctx, text)
	if err != nil {
		reply = ErrorReply
	}

	a.mu.Lock()
	a.messages = append(a.messages, model.ChatMessage{Message: reply, Sender: model.ChatSenderAI})
	a.busy = false
	a.mu.Unlock()

	if err == nil {
		a.persistAsync(reply, model.ChatSenderAI)
	}
	return err
}

// LoadHistory seeds the transcript from persisted entries (oldest first).
func (a *Analyst) LoadHistory(history []model.ChatMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append([]model.ChatMessage{}, history...)
}

func (a *Analyst) persistAsync(text string, sender model.ChatSender) {
	if a.persist == nil {
		return
	}
	a.persistWG.Add(1)
	go func() {
		defer a.persistWG.Done()
		// Detached from the send's ctx: a canceled send must not cancel the save.
		if err := a.persist.SaveChatMessage(context.Background(), text, sender); err != nil {
			a.notify(err)
		}
	}()
}

// Flush waits for outstanding persistence calls; used on shutdown and in tests.
func (a *Analyst) Flush() {
	a.persistWG.Wait()
}
