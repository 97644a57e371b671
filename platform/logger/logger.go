// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// LookupKeyKey is the context key for the lookup key being resolved
	LookupKeyKey contextKey = "lookup_key"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter creates a logger writing to w. Used by the CLI (stderr) and tests.
func NewWithWriter(env string, w io.Writer) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and lookup_key from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = newLogger.WithRequestID(requestID)
	}

	if key, ok := ctx.Value(LookupKeyKey).(string); ok && key != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("lookup_key", key)),
		}
	}

	return newLogger
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// ProviderCall logs the outcome of a single provider adapter invocation.
// Failures are expected data, so they are logged at warn level.
func (l *Logger) ProviderCall(source string, success bool, latencyMs float64, reason string) {
	if success {
		l.Debug("provider_call",
			slog.String("source", source),
			slog.Bool("success", success),
			slog.Float64("latency_ms", latencyMs),
		)
		return
	}
	l.Warn("provider_call",
		slog.String("source", source),
		slog.Bool("success", success),
		slog.Float64("latency_ms", latencyMs),
		slog.String("reason", reason),
	)
}

// BatchCompleted logs a finished aggregation stage
func (l *Logger) BatchCompleted(stage string, dispatched, succeeded int) {
	l.Debug("batch_completed",
		slog.String("stage", stage),
		slog.Int("dispatched", dispatched),
		slog.Int("succeeded", succeeded),
	)
}

// LookupCompleted logs a finished lookup
func (l *Logger) LookupCompleted(key string, found bool, successCount, ledgerSize int) {
	l.Info("lookup_completed",
		slog.String("lookup_key", key),
		slog.Bool("found", found),
		slog.Int("success_count", successCount),
		slog.Int("ledger_size", ledgerSize),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
