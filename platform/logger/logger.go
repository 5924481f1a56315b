// Package logger wraps log/slog with the attributes SeedStore logs on every
// line: request ID and the acting user.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

const (
	// RequestIDKey holds the X-Request-ID of the current request (string).
	RequestIDKey contextKey = "request_id"
	// UserIDKey holds the authenticated user's ID (int64).
	UserIDKey contextKey = "user_id"
)

// Logger is a *slog.Logger with a few event helpers.
type Logger struct {
	*slog.Logger
}

// New logs text at debug level in development and JSON at info level
// everywhere else.
func New(env string) *Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *Logger {
	if strings.EqualFold(env, "development") {
		return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	}
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

// WithContext adds request_id and user_id when ctx carries them.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	var attrs []any
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if userID, ok := ctx.Value(UserIDKey).(int64); ok && userID > 0 {
		attrs = append(attrs, slog.Int64("user_id", userID))
	}
	if len(attrs) == 0 {
		return l
	}
	return &Logger{Logger: l.With(attrs...)}
}

func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent records the outcome of resolving a token email to a user.
// Failures log at warn with the reason.
func (l *Logger) AuthEvent(event, email string, success bool, reason string) {
	attrs := []any{slog.String("event", event), slog.String("email", email), slog.Bool("success", success)}
	if success {
		l.Info("auth_event", attrs...)
		return
	}
	l.Warn("auth_event", append(attrs, slog.String("reason", reason))...)
}

func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}

// ChatSearch logs one chat search turn: the prompt, the extracted criteria and
// how many products survived filtering out of the fetched catalog.
func (l *Logger) ChatSearch(prompt string, criteria any, fetched, matched int) {
	l.Info("chat_search",
		slog.String("prompt", prompt),
		slog.Any("criteria", criteria),
		slog.Int("fetched", fetched),
		slog.Int("matched", matched),
	)
}

// EmailDelivery logs one order notification attempt.
func (l *Logger) EmailDelivery(template string, orderID int64, to string, err error) {
	attrs := []any{slog.String("template", template), slog.Int64("order_id", orderID), slog.String("to", to)}
	if err != nil {
		l.Error("email_delivery", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	l.Info("email_delivery", attrs...)
}
