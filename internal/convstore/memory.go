package convstore

import (
	"context"
	"sync"
	"time"
)

const defaultHistoryCap = 50

// conversation is the in-memory state of one conversation.
type conversation struct {
	pending []PendingMutation
	turns   []Turn
	touched time.Time
}

// MemoryStore is a mutex-guarded in-memory Store with TTL eviction. Idle
// conversations are swept on access; no background timer is required.
type MemoryStore struct {
	mu    sync.Mutex
	conv  map[string]*conversation
	ttl   time.Duration
	now   func() time.Time
	limit int
}

// NewMemoryStore creates an in-memory conversation store. Conversations idle
// for longer than ttl are evicted wholesale.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		conv:  make(map[string]*conversation),
		ttl:   ttl,
		now:   time.Now,
		limit: defaultHistoryCap,
	}
}

func (s *MemoryStore) get(id string) *conversation {
	now := s.now()
	for k, c := range s.conv {
		if now.Sub(c.touched) > s.ttl {
			delete(s.conv, k)
		}
	}
	c, ok := s.conv[id]
	if !ok {
		c = &conversation{}
		s.conv[id] = c
	}
	c.touched = now
	return c
}

func (s *MemoryStore) Pending(_ context.Context, conversationID string) ([]PendingMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(conversationID)
	now := s.now()
	live := c.pending[:0]
	for _, p := range c.pending {
		if !p.Expired(now) {
			live = append(live, p)
		}
	}
	c.pending = live

	out := make([]PendingMutation, len(c.pending))
	copy(out, c.pending)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, conversationID string, item PendingMutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(conversationID)
	c.pending = append(c.pending, item)
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, conversationID string, items []PendingMutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(conversationID)
	c.pending = append(c.pending[:0:0], items...)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(conversationID)
	c.pending = nil
	return nil
}

func (s *MemoryStore) AppendTurn(_ context.Context, conversationID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(conversationID)
	c.turns = append(c.turns, turn)
	if len(c.turns) > s.limit {
		c.turns = c.turns[len(c.turns)-s.limit:]
	}
	return nil
}

func (s *MemoryStore) History(_ context.Context, conversationID string, limit int) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(conversationID)
	turns := c.turns
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
