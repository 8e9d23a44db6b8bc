package seqpack

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/seqpack/alphabet"
)

// Logger wraps slog.Logger with seqpack-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithOp adds an operation field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// LogBuild logs a sequence build.
func (l *Logger) LogBuild(ctx context.Context, kind alphabet.Kind, symbols, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"kind", kind.String(),
			"symbols", symbols,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"kind", kind.String(),
			"symbols", symbols,
			"bytes", bytes,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, op string, patternLen, maxEdits, chunks, matches int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"op", op,
			"pattern_len", patternLen,
			"max_edits", maxEdits,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"op", op,
			"pattern_len", patternLen,
			"max_edits", maxEdits,
			"chunks", chunks,
			"matches", matches,
		)
	}
}

// LogSave logs a persisted sequence.
func (l *Logger) LogSave(ctx context.Context, name string, symbols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "sequence saved",
			"name", name,
			"symbols", symbols,
		)
	}
}

// LogLoad logs a loaded sequence.
func (l *Logger) LogLoad(ctx context.Context, name string, symbols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "sequence loaded",
			"name", name,
			"symbols", symbols,
		)
	}
}
