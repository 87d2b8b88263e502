package command

import (
	"context"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type OutcomeKind int

const (
	OutcomeNotFound OutcomeKind = iota
	OutcomeHandled
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeHandled:
		return "handled"
	case OutcomeFailed:
		return "failed"
	default:
		return "not found"
	}
}

// Outcome is the result of one dispatch. Result is set for OutcomeHandled
// (empty when the handler had nothing to say), Failure for OutcomeFailed.
type Outcome struct {
	Kind    OutcomeKind
	Result  string
	Failure *Failure
}

// Failure is a handler fault together with the identity that was acting.
type Failure struct {
	Err      error
	Identity Identity
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

func Handled(result string) Outcome {
	return Outcome{Kind: OutcomeHandled, Result: result}
}

func Failed(err error, id Identity) Outcome {
	return Outcome{Kind: OutcomeFailed, Failure: &Failure{Err: err, Identity: id}}
}

// Dispatch resolves name and runs its handler to completion. Handler errors
// and panics become an OutcomeFailed; they never reach the caller.
func (b *Bot) Dispatch(ctx context.Context, name string, msg *Message, args []string) Outcome {
	d, ok := b.Registry.Resolve(name)
	if !ok {
		return NotFound()
	}

	if msg.SpanContext.IsValid() {
		ctx = trace.ContextWithSpanContext(ctx, msg.SpanContext)
	}
	ctx, span := b.tracer.Start(ctx, "command.dispatch", trace.WithAttributes(
		attribute.String("command.name", d.Name),
		attribute.String("command.invoked_as", name),
		attribute.String("message.id", msg.ID),
		attribute.Int("command.args", len(args)),
	))
	defer span.End()

	log := b.logger.With("command", d.Name, "id", msg.ID)
	start := time.Now()

	result, err := b.invoke(ctx, d, msg, args)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Err(
			"command failed",
			"err", err,
			"elapsed", time.Since(start),
		)
		return Failed(err, b.Identity)
	}

	log.Debug(
		"command handled",
		"elapsed", time.Since(start),
	)
	return Handled(result)
}

func (b *Bot) invoke(ctx context.Context, d Descriptor, msg *Message, args []string) (result string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return d.Handler(ctx, b, msg, args)
}
