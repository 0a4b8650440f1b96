// Package cache provides the optional short-TTL read cache in front of
// the public list endpoints. A nil Cache disables caching entirely.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache keys. Mutating operations invalidate the list they touch.
const (
	KeyAllPosts    = "posts:all"
	KeyAllProfiles = "profiles:all"
)
