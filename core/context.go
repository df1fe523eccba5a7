package core

import "context"

type contextKey int

const suppressHeaderKey contextKey = iota

// WithSuppressHeader marks a context so analysis entry points skip the
// human-readable header. Used by the MCP server, whose stdio carries the
// protocol and must stay clean.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader reports whether header output is suppressed.
func shouldSuppressHeader(ctx context.Context) bool {
	v, _ := ctx.Value(suppressHeaderKey).(bool)
	return v
}
