// Package txn defines the unit-of-work boundary shared by the ledger services.
package txn

import (
	"context"
	"sync"
)

// Transactor runs a function as one atomic unit of work. If the function
// returns an error, none of the repository mutations made inside it remain
// visible to other requests.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Serial is a Transactor for the in-memory adapters: it serializes units of
// work behind a single mutex, so multi-step mutations are never interleaved.
// Callers are expected to compensate already-applied steps before returning
// an error, which the serialization makes race-free.
type Serial struct {
	mu sync.Mutex
}

// NewSerial constructs a mutex-backed transactor.
func NewSerial() *Serial {
	return &Serial{}
}

// WithinTx runs fn while holding the process-wide unit-of-work lock.
func (s *Serial) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

var _ Transactor = (*Serial)(nil)
