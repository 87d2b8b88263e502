package command

import (
	"context"
	"io"
	"sync"
	"testing"
)

type recorder struct {
	mu   sync.Mutex
	sent []Payload
}

func (r *recorder) Send(p Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, p)
	return nil
}

func (r *recorder) payloads() []Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Payload(nil), r.sent...)
}

// lines is a Source over a fixed list of inputs sharing one channel.
type lines struct {
	inputs []string
	ch     Channel
}

func (l *lines) Next(ctx context.Context) (*Message, error) {
	if len(l.inputs) == 0 {
		return nil, io.EOF
	}
	line := l.inputs[0]
	l.inputs = l.inputs[1:]
	return NewMessage(line, l.ch), nil
}

func newTestBot(t testing.TB, descriptors ...Descriptor) *Bot {
	r := NewRegistry()
	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			t.Fatalf("register %s: %v", d.Name, err)
		}
	}
	return NewBot(r, WithIdentity(Identity{Name: "trollsmile cli", Icon: "icon.png"}))
}

func firstArg(_ context.Context, _ *Bot, _ *Message, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], nil
}
