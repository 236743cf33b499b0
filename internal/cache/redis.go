package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"linkfeed/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisOptions locates the redis server.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

const (
	redisKeyPrefix     = "linkfeed:feed:"
	redisGenerationKey = redisKeyPrefix + "generation"
	redisPingTimeout   = 5 * time.Second
)

// Redis is a FeedCache shared between processes. Invalidate bumps a
// generation counter that is part of every key, so stale entries simply
// stop being addressed and expire on their own. A Set carrying an old
// generation lands under an old key and is never read.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(opts RedisOptions, ttl time.Duration) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

var _ FeedCache = (*Redis)(nil)

func (r *Redis) Get(ctx context.Context, key string) (models.Feed, bool, error) {
	gen, err := r.Generation(ctx)
	if err != nil {
		return models.Feed{}, false, err
	}
	raw, err := r.client.Get(ctx, generationKey(gen, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Feed{}, false, nil
		}
		return models.Feed{}, false, err
	}
	var feed models.Feed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return models.Feed{}, false, fmt.Errorf("decode cached feed: %w", err)
	}
	return feed, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, gen uint64, feed models.Feed) error {
	raw, err := json.Marshal(feed)
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	return r.client.Set(ctx, generationKey(gen, key), raw, r.ttl).Err()
}

func (r *Redis) Invalidate(ctx context.Context) error {
	return r.client.Incr(ctx, redisGenerationKey).Err()
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Generation reads the shared counter; a missing counter is generation 0.
func (r *Redis) Generation(ctx context.Context) (uint64, error) {
	gen, err := r.client.Get(ctx, redisGenerationKey).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return gen, nil
}

func generationKey(gen uint64, key string) string {
	return fmt.Sprintf("%s%d:%s", redisKeyPrefix, gen, key)
}
