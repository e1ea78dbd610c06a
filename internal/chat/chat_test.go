package chat

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"liftoff-cli/internal/model"
)

type fakeGen struct {
	mu      sync.Mutex
	reply   string
	err     error
	block   chan struct{}
	prompts []string
}

func (g *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return g.reply, g.err
}

type fakePersist struct {
	mu    sync.Mutex
	saved []model.ChatMessage
	err   error
}

func (p *fakePersist) SaveChatMessage(_ context.Context, text string, sender model.ChatSender) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.saved = append(p.saved, model.ChatMessage{Message: text, Sender: sender})
	return nil
}

func TestSendAppendsUserAndReply(t *testing.T) {
	gen := &fakeGen{reply: "insightful analysis"}
	a := New(gen, nil, nil)

	if err := a.Send(context.Background(), "how is the sprint going?"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	msgs := a.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Sender != model.ChatSenderUser || msgs[1].Sender != model.ChatSenderAI {
		t.Fatalf("unexpected senders: %+v", msgs)
	}
	if msgs[1].Message != "insightful analysis" {
		t.Fatalf("unexpected reply: %q", msgs[1].Message)
	}
}

func TestSendFailureAppendsExactlyOneErrorPlaceholder(t *testing.T) {
	gen := &fakeGen{err: errors.New("no connectivity")}
	a := New(gen, nil, nil)

	if err := a.Send(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error")
	}
	msgs := a.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user message + one placeholder, got %d", len(msgs))
	}
	if msgs[1].Message != ErrorReply || msgs[1].Sender != model.ChatSenderAI {
		t.Fatalf("unexpected placeholder: %+v", msgs[1])
	}
	if a.Busy() {
		t.Fatalf("input must be re-enabled after a failed send")
	}
}

func TestSendIsSingleFlight(t *testing.T) {
	gen := &fakeGen{reply: "ok", block: make(chan struct{})}
	a := New(gen, nil, nil)

	done := make(chan error, 1)
	go func() { done <- a.Send(context.Background(), "first") }()

	for !a.Busy() {
		runtime.Gosched()
	}
	if err := a.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}
	if got := len(a.Messages()); got != 2 {
		t.Fatalf("rejected send must not touch the transcript, got %d messages", got)
	}
}

func TestBlankInputIgnored(t *testing.T) {
	gen := &fakeGen{reply: "ok"}
	a := New(gen, nil, nil)
	if err := a.Send(context.Background(), "   "); err != nil {
		t.Fatalf("blank send: %v", err)
	}
	if len(a.Messages()) != 0 {
		t.Fatalf("blank input must not be appended")
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("blank input must not reach the generator")
	}
}

func TestPersistFailureDoesNotAlterTranscript(t *testing.T) {
	gen := &fakeGen{reply: "fine"}
	persist := &fakePersist{err: errors.New("backend down")}
	var notified []error
	var mu sync.Mutex
	a := New(gen, persist, func(err error) {
		mu.Lock()
		notified = append(notified, err)
		mu.Unlock()
	})

	if err := a.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	a.Flush()

	if len(a.Messages()) != 2 {
		t.Fatalf("transcript must be intact, got %d messages", len(a.Messages()))
	}
	mu.Lock()
	defer mu.Unlock()
	if len(notified) == 0 {
		t.Fatalf("persistence failure must surface a notification")
	}
}

func TestPersistSavesBothSides(t *testing.T) {
	gen := &fakeGen{reply: "answer"}
	persist := &fakePersist{}
	a := New(gen, persist, nil)

	if err := a.Send(context.Background(), "question"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	a.Flush()

	persist.mu.Lock()
	defer persist.mu.Unlock()
	if len(persist.saved) != 2 {
		t.Fatalf("expected both sides persisted, got %d", len(persist.saved))
	}
}

func TestLoadHistory(t *testing.T) {
	a := New(&fakeGen{reply: "x"}, nil, nil)
	a.LoadHistory([]model.ChatMessage{
		{Message: "old question", Sender: model.ChatSenderUser},
		{Message: "old answer", Sender: model.ChatSenderAI},
	})
	if len(a.Messages()) != 2 {
		t.Fatalf("history not loaded")
	}
}
