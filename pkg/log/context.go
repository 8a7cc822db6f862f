package log

import "context"

type requestIDKey struct{}

// SetRequestIDToContext attaches a request id that every log line written with ctx will carry.
func SetRequestIDToContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestIDFromContext returns the request id or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
