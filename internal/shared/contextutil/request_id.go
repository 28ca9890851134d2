package contextutil

import "context"

// GetRequestID returns the request id put in ctx by the RequestID middleware.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID stores rid in ctx. Also handy in unit tests.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetKey exposes the raw key name for middleware that also sets it on gin.Context.
func GetKey() string {
	return string(requestIDKey)
}
