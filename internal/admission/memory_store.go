package admission

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps per-key token buckets in process memory. Buckets are
// created lazily and evicted after they sit idle for the configured TTL, so
// the map stays bounded by active clients instead of growing forever.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	ttl     time.Duration
	done    chan struct{}
	closed  sync.Once
}

type bucketEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// DefaultBucketTTL is how long an idle bucket survives before eviction.
const DefaultBucketTTL = 10 * time.Minute

// NewMemoryStore builds a store and starts its eviction sweeper. Callers
// must Close it when done.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultBucketTTL
	}
	s := &MemoryStore{
		buckets: map[string]*bucketEntry{},
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Allow consumes one token from the bucket for key, creating it at full
// capacity first if needed.
func (s *MemoryStore) Allow(_ context.Context, key string, limit Limit) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.buckets[key]
	if !ok {
		refill := rate.Limit(float64(limit.Requests) / float64(limit.WindowSeconds))
		entry = &bucketEntry{limiter: rate.NewLimiter(refill, limit.Requests)}
		s.buckets[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow(), nil
}

// Close stops the eviction sweeper.
func (s *MemoryStore) Close() {
	s.closed.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep() {
	interval := s.ttl / 2
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
			for key, entry := range s.buckets {
				if now.Sub(entry.lastSeen) > s.ttl {
					delete(s.buckets, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Len reports the number of live buckets, used by tests and diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
