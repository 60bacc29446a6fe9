package audit

import (
	"context"
	"sync"
)

// Store is the persistence contract for audit entries.
//
// It MUST be append-only.
type Store interface {
	Append(ctx context.Context, e Entry) error
	// Name labels the sink in logs and metrics.
	Name() string
}

// Query filters recent entries. Zero values mean "any".
type Query struct {
	Category  Category
	EventType EventType
	PartnerID string
	Limit     int
}

const (
	defaultQueryLimit = 100
	maxQueryLimit     = 1000
)

func (q Query) limit() int {
	switch {
	case q.Limit <= 0:
		return defaultQueryLimit
	case q.Limit > maxQueryLimit:
		return maxQueryLimit
	}
	return q.Limit
}

func (q Query) matches(e Entry) bool {
	if q.Category != "" && e.Category != q.Category {
		return false
	}
	if q.EventType != "" && e.EventType != q.EventType {
		return false
	}
	if q.PartnerID != "" && e.PartnerID != q.PartnerID {
		return false
	}
	return true
}

// Reader lists recent entries, newest first. Audit is internal-only; expose it to admins alone.
type Reader interface {
	Recent(ctx context.Context, q Query) ([]Entry, error)
}

// MemoryStore is an in-memory append-only store for tests and local development.
// It is not intended for production use.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

// Entries returns a copy of everything appended so far, oldest first.
func (s *MemoryStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *MemoryStore) Recent(ctx context.Context, q Query) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	limit := q.limit()
	out := make([]Entry, 0)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if q.matches(s.entries[i]) {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}
