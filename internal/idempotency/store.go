// Package idempotency deduplicates order submissions by a caller-supplied
// token, so a retried request never reaches the inventory ledger twice.
package idempotency

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateKey is returned when a token was already accepted.
var ErrDuplicateKey = errors.New("idempotency key already used")

// DefaultTokenTTL bounds how long an accepted token blocks resubmission.
const DefaultTokenTTL = 24 * time.Hour

// Store records accepted tokens. PutIfAbsent is atomic per token: under
// concurrent delivery of the same token exactly one call succeeds.
type Store interface {
	// PutIfAbsent claims the token. It returns ErrDuplicateKey when the
	// token is already claimed and still within its TTL.
	PutIfAbsent(ctx context.Context, token string) error
}
