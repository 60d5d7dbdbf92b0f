package hookx

import "context"

// EventStore persists webhook events.
type EventStore interface {
	// SaveEvents stores events, skipping event ids already stored, and
	// returns how many were new.
	SaveEvents(ctx context.Context, events []StoredEvent) (int, error)

	// ListByRecipient returns the newest events for rcpt, at most limit.
	ListByRecipient(ctx context.Context, rcpt string, limit int) ([]StoredEvent, error)
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthFunc adapts a function to HealthChecker.
type HealthFunc func(ctx context.Context) error

func (f HealthFunc) Ping(ctx context.Context) error { return f(ctx) }
