// Package cache keeps the per-email issue counters in Redis. The counters are
// advisory: when Redis is down the engine issues codes anyway.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
)

type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("otp.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func key(email, window string) string {
	return fmt.Sprintf("otp:issued:%s:%s", window, email)
}

// CountIssued increments the counter for the window and returns the new
// value. The TTL is set only when the key is created, so the window is
// anchored to the first issue in it.
func (c *Cache) CountIssued(ctx context.Context, email, window string, ttl time.Duration) (n int64, err error) {
	ctx, span := c.startSpan(ctx, "CountIssued")
	defer func() { c.endSpan(span, err) }()

	k := key(email, window)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, ttl)
	if _, err = pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

// PeekIssued returns the counter without touching it. A missing key counts
// as zero.
func (c *Cache) PeekIssued(ctx context.Context, email, window string) (n int64, err error) {
	ctx, span := c.startSpan(ctx, "PeekIssued")
	defer func() { c.endSpan(span, err) }()

	n, err = c.client.Get(ctx, key(email, window)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
