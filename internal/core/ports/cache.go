package ports

import (
	"context"
	"time"
)

// Cache is a best-effort key-value accelerator. Implementations swallow and
// log store errors: Get reports a miss and Set is a no-op when the backing
// store is unavailable, so the caller never fails because of the cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}
