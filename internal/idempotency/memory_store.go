package idempotency

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps accepted tokens in process memory with per-token
// expiry, so the seen-set stays bounded instead of growing forever.
type MemoryStore struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	done   chan struct{}
	closed sync.Once
}

// NewMemoryStore builds a store and starts its eviction sweeper. Callers
// must Close it when done.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &MemoryStore{
		seen: map[string]time.Time{},
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go s.sweep()
	return s
}

// PutIfAbsent claims the token under the store lock; the test and the
// insert are one step.
func (s *MemoryStore) PutIfAbsent(_ context.Context, token string) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if expiry, ok := s.seen[token]; ok && now.Before(expiry) {
		return ErrDuplicateKey
	}
	s.seen[token] = now.Add(s.ttl)
	return nil
}

// Close stops the eviction sweeper.
func (s *MemoryStore) Close() {
	s.closed.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep() {
	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, expiry := range s.seen {
				if now.After(expiry) {
					delete(s.seen, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Len reports the number of tracked tokens, used by tests and diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
