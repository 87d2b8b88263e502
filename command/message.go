package command

import (
	"fmt"

	"github.com/pborman/uuid"
	"go.opentelemetry.io/otel/trace"
)

// FailureColor marks error reports.
const FailureColor = "RED"

type Payload interface {
	payload()
}

type Text string

func (Text) payload() {}

type Author struct {
	Name    string
	IconURL string
}

// ErrorReport is sent when a command fails. The transport decides how it looks.
type ErrorReport struct {
	Author Author
	Title  string
	Color  string
}

func (*ErrorReport) payload() {}

func NewErrorReport(f *Failure) *ErrorReport {
	return &ErrorReport{
		Author: Author{
			Name:    fmt.Sprintf("%s ran into an error while running your command!", f.Identity.Name),
			IconURL: f.Identity.Icon,
		},
		Title: f.Err.Error(),
		Color: FailureColor,
	}
}

type Channel interface {
	Send(p Payload) error
}

type ChannelFunc func(p Payload) error

func (f ChannelFunc) Send(p Payload) error {
	return f(p)
}

// Settler is implemented by channels that need to know when the message they
// belong to has been fully handled.
type Settler interface {
	Settle()
}

type Message struct {
	ID      string
	Content string
	Channel Channel

	// SpanContext links dispatch spans to the request that delivered the
	// line, when the transport has one.
	SpanContext trace.SpanContext
}

func NewMessage(content string, ch Channel) *Message {
	return &Message{
		ID:      uuid.New(),
		Content: content,
		Channel: ch,
	}
}
