package command

import (
	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zrma/trollsmile/logging"
)

const tracerName = "github.com/zrma/trollsmile/command"

// Identity is how the bot presents itself in error reports.
type Identity struct {
	Name string
	Icon string
}

// Bot is the acting context handed to every handler. It owns the loaded
// registry; build it only after loading has finished.
type Bot struct {
	Registry *Registry
	Identity Identity
	Prefix   string

	filter func(*Message) bool
	known  mapset.Set[string]
	logger logging.Logger
	tracer trace.Tracer
}

type BotOption func(*Bot)

func WithIdentity(id Identity) BotOption {
	return func(b *Bot) {
		b.Identity = id
	}
}

func WithPrefix(prefix string) BotOption {
	return func(b *Bot) {
		b.Prefix = prefix
	}
}

// WithFilter drops every message for which accept returns false before matching.
func WithFilter(accept func(*Message) bool) BotOption {
	return func(b *Bot) {
		b.filter = accept
	}
}

func WithLogger(logger logging.Logger) BotOption {
	return func(b *Bot) {
		b.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) BotOption {
	return func(b *Bot) {
		b.tracer = tracer
	}
}

func NewBot(registry *Registry, opts ...BotOption) *Bot {
	b := &Bot{
		Registry: registry,
		filter:   func(*Message) bool { return true },
		logger:   logging.Nop(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.known = registry.Names()
	return b
}
