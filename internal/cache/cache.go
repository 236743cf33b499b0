// Package cache keeps feed results keyed by their argument-derived identifier.
// Entries never outlive a mutation: writers call Invalidate after every change
// to links or votes.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linkfeed/internal/models"
)

// FeedCache stores feed results by feed identifier.
type FeedCache interface {
	// Get returns the cached feed and whether it was present.
	Get(ctx context.Context, key string) (models.Feed, bool, error)
	// Generation identifies the current cache epoch. Read it before loading
	// a feed from the store and hand it to Set.
	Generation(ctx context.Context) (uint64, error)
	// Set stores feed unless an Invalidate happened after gen was read.
	Set(ctx context.Context, key string, gen uint64, feed models.Feed) error
	// Invalidate drops every cached feed and starts a new generation.
	Invalidate(ctx context.Context) error
}

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options configures New.
type Options struct {
	Backend string
	TTL     time.Duration
	Redis   RedisOptions
}

// New builds the configured backend. A zero TTL disables caching.
func New(opts Options) (FeedCache, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if opts.TTL <= 0 {
		backend = BackendNone
	}
	switch backend {
	case "", BackendNone:
		return Nop{}, nil
	case BackendMemory:
		return NewMemory(opts.TTL), nil
	case BackendRedis:
		return NewRedis(opts.Redis, opts.TTL)
	default:
		return nil, fmt.Errorf("unknown feed cache backend %q", opts.Backend)
	}
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) (models.Feed, bool, error) { return models.Feed{}, false, nil }
func (Nop) Generation(context.Context) (uint64, error)             { return 0, nil }
func (Nop) Set(context.Context, string, uint64, models.Feed) error { return nil }
func (Nop) Invalidate(context.Context) error                       { return nil }

// cloneFeed copies the links slice so cached entries are never shared.
func cloneFeed(f models.Feed) models.Feed {
	out := f
	out.Links = make([]models.Link, len(f.Links))
	copy(out.Links, f.Links)
	return out
}
