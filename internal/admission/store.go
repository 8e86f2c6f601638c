package admission

import "context"

// Store decides whether one request fits into a keyed token bucket. The
// consume is atomic per key: two concurrent calls for the last token never
// both succeed.
type Store interface {
	// Allow consumes one token from the bucket identified by key, creating
	// the bucket at full capacity on first use.
	Allow(ctx context.Context, key string, limit Limit) (bool, error)
}
