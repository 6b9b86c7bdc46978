package repository

import "context"

type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// CacheFlusher is implemented by caches that can be emptied in one call.
type CacheFlusher interface {
	Flush(ctx context.Context) error
}
