package logging

import (
	"strings"

	"go.uber.org/zap"
)

type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Err(msg string, kv ...interface{})
	Fatal(msg string, kv ...interface{})
	With(kv ...interface{}) Logger
	Sync() error
}

type LogLevel int

const (
	None LogLevel = 0 + iota
	Dev
	Prod
)

// ParseLevel maps the value of the `environment` variable to a LogLevel.
// Anything unrecognised is treated as development.
func ParseLevel(environment string) LogLevel {
	const (
		dev  = "development"
		prod = "production"
		skip = "skip"
	)

	switch strings.ToLower(strings.TrimSpace(environment)) {
	case prod:
		return Prod
	case skip:
		return None
	case dev:
		fallthrough
	default:
		return Dev
	}
}

func NewLogger(level LogLevel) (Logger, error) {
	var logger *zap.Logger
	var err error
	switch level {
	case Dev:
		logger, err = zap.NewDevelopment()
	case Prod:
		logger, err = zap.NewProduction()
	case None:
		fallthrough
	default:
		logger = zap.NewNop()
	}
	if err != nil {
		return nil, err
	}

	return &loggerImpl{logger.Sugar()}, nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &loggerImpl{zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger.
func FromZap(logger *zap.Logger) Logger {
	return &loggerImpl{logger.Sugar()}
}

type loggerImpl struct {
	*zap.SugaredLogger
}

func (l loggerImpl) Debug(msg string, kv ...interface{}) {
	l.Debugw(msg, kv...)
}

func (l loggerImpl) Info(msg string, kv ...interface{}) {
	l.Infow(msg, kv...)
}

func (l loggerImpl) Warn(msg string, kv ...interface{}) {
	l.Warnw(msg, kv...)
}

func (l loggerImpl) Err(msg string, kv ...interface{}) {
	l.Errorw(msg, kv...)
}

func (l loggerImpl) Fatal(msg string, kv ...interface{}) {
	l.Fatalw(msg, kv...)
}

func (l loggerImpl) With(kv ...interface{}) Logger {
	return &loggerImpl{l.SugaredLogger.With(kv...)}
}
