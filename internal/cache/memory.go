package cache

import (
	"context"
	"sync"
	"time"

	"linkfeed/internal/models"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process FeedCache backed by patrickmn/go-cache.
type Memory struct {
	cache *gocache.Cache

	mu  sync.Mutex // orders Set against Invalidate
	gen uint64
}

// NewMemory creates a cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{cache: gocache.New(ttl, 2*ttl)}
}

var _ FeedCache = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, key string) (models.Feed, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return models.Feed{}, false, nil
	}
	feed, ok := v.(models.Feed)
	if !ok {
		m.cache.Delete(key)
		return models.Feed{}, false, nil
	}
	return cloneFeed(feed), true, nil
}

func (m *Memory) Generation(context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen, nil
}

// Set drops the write when the cache was invalidated after gen was read.
func (m *Memory) Set(_ context.Context, key string, gen uint64, feed models.Feed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return nil
	}
	m.cache.SetDefault(key, cloneFeed(feed))
	return nil
}

func (m *Memory) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.cache.Flush()
	return nil
}
