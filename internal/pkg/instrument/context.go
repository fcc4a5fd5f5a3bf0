package instrument

import "context"

type correlationKey struct{}

// SetCorrelationID stores a request correlation ID in the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationKey{}, cid)
}

// GetCorrelationID returns the correlation ID stored in the context, or "".
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationKey{}).(string)
	return cid
}
