package hookx

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an EventStore kept in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	events []StoredEvent
	seen   map[string]struct{}
}

var _ EventStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

func (s *MemoryStore) SaveEvents(ctx context.Context, events []StoredEvent) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := 0
	for _, ev := range events {
		if _, ok := s.seen[ev.EventID]; ok {
			continue
		}
		s.seen[ev.EventID] = struct{}{}
		s.events = append(s.events, ev)
		saved++
	}
	return saved, nil
}

func (s *MemoryStore) ListByRecipient(ctx context.Context, rcpt string, limit int) ([]StoredEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []StoredEvent
	for _, ev := range slices.Backward(s.events) {
		if ev.RcptTo != rcpt {
			continue
		}
		out = append(out, ev)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
