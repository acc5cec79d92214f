// cache — снимки последних удачных страниц публичных списков в Redis.
// Используется как fallback-стратегия режима snapshot: при сетевом отказе
// список показывает последнюю известную страницу с пометкой degraded.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss — снимка нет (или истёк TTL).
var ErrMiss = errors.New("snapshot miss")

// PageCache — минимальный контракт хранилища снимков.
type PageCache interface {
	// Get возвращает сохранённое значение и признак его наличия.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set сохраняет значение с TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "events:page:".
func NewRedisCache(ctx context.Context, redisURL, prefix string) (PageCache, error) {
	if prefix == "" {
		prefix = "events:page:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(k string) string { return c.prefix + k }

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.key(key), value, ttl).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
