// Package requestctx carries per-call identifiers through context.
package requestctx

import "context"

// invocationIDContextKey is the context key for the MCP tool invocation id.
type invocationIDContextKey struct{}

// WithInvocationID stores a tool invocation identifier in context.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, invocationIDContextKey{}, invocationID)
}

// InvocationIDFromContext returns the invocation identifier stored in context.
func InvocationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(invocationIDContextKey{}).(string)
	return value
}
