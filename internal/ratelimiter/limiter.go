// Package ratelimiter holds the request limiters used by the HTTP layer: an
// in-process fixed window and a Redis token bucket shared between replicas.
package ratelimiter

import (
	"context"
	"time"
)

// Limiter reports whether the caller identified by key may proceed, and if
// not, how long it should wait.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
