// Package cachemanager provides a small generic caching layer. The preview
// engine uses it to memoize typeset widget markup keyed by formula, so
// re-parsing a document does not re-typeset unchanged formulas.
package cachemanager

import (
	"context"
	"time"
)

type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
