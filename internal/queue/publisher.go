package queue

import "context"

// Publisher fans domain events out to the notify worker. Handlers publish
// fire-and-forget; a nil-safe Noop stands in when Rabbit is not configured.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }
