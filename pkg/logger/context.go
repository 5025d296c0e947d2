package logger

import (
	"context"
	"log/slog"
)

type sessionKey struct{}

// WithSessionID stores the checkout session identifier in ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionIDFromContext returns the session identifier stored by WithSessionID.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// SessionExtractor injects the session identifier into every record logged
// with a context carrying one.
func SessionExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := SessionIDFromContext(ctx); id != "" {
			return SessionID(id), true
		}
		return slog.Attr{}, false
	}
}
