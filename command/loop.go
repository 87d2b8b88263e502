package command

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Source yields input lines as messages. Next blocks until a line arrives and
// returns io.EOF once the input is exhausted.
type Source interface {
	Next(ctx context.Context) (*Message, error)
}

// Handle runs one message through match, tokenize, dispatch and report.
func (b *Bot) Handle(ctx context.Context, msg *Message) Outcome {
	if !b.filter(msg) {
		return NotFound()
	}

	name, ok := Match(msg.Content, b.Prefix, b.known)
	if !ok {
		return NotFound()
	}

	args := Tokenize(msg.Content, len(b.Prefix)+len(name))
	o := b.Dispatch(ctx, name, msg, args)
	if err := b.Report(msg, o); err != nil {
		b.logger.Err(
			"report failed",
			"command", name,
			"id", msg.ID,
			"err", err,
		)
	}
	return o
}

// Run handles messages from src one at a time, in arrival order, until src is
// exhausted or ctx is done. The next message is not read before the current
// one is fully handled.
func (b *Bot) Run(ctx context.Context, src Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read next message: %w", err)
		}

		b.Handle(ctx, msg)
		if s, ok := msg.Channel.(Settler); ok {
			s.Settle()
		}
	}
}
