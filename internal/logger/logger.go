package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog with the scope/function attribution used across the app.
// Err/Error variants both log and return an error so call sites can do
// `return log.Err("...", err)` in one line.
type Logger struct {
	l *slog.Logger
}

func New(scope string) Logger {
	return Logger{l: slog.Default().With("scope", scope)}
}

func (l Logger) Function(name string) Logger {
	return Logger{l: l.l.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{l: l.l.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{l: l.l.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.l.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.l.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.l.Warn(msg, args...)
}

// Er logs an error without returning one.
func (l Logger) Er(msg string, err error, args ...any) {
	l.l.Error(msg, append(args, "error", err)...)
}

// ErMsg logs an error message without an underlying error value.
func (l Logger) ErMsg(msg string, args ...any) {
	l.l.Error(msg, args...)
}

// Err logs and returns a wrapped error.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from msg.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return errors.New(msg)
}

// ErrMsg is Error without structured args.
func (l Logger) ErrMsg(msg string) error {
	l.ErMsg(msg)
	return errors.New(msg)
}

// Init installs the process-wide slog handler. Called once from main.
func Init(environment string) {
	if environment == "development" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
}
