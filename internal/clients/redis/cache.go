package redis

import (
  "context"
  "fmt"
  "os"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/recipebox/recipebox-backend/internal/logger"
)

// Cache is a thin TTL cache over redis, used for the public listing.
type Cache interface {
  Get(ctx context.Context, key string) ([]byte, bool)
  Set(ctx context.Context, key string, value []byte, ttl time.Duration)
  Close() error
}

type cache struct {
  log *logger.Logger
  rdb *goredis.Client
}

func NewCache(log *logger.Logger) (Cache, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &cache{
    log: log.With("service", "RedisCache"),
    rdb: rdb,
  }, nil
}

func (c *cache) Get(ctx context.Context, key string) ([]byte, bool) {
  val, err := c.rdb.Get(ctx, key).Bytes()
  if err != nil {
    if err != goredis.Nil {
      c.log.Warn("Cache get failed", "error", err, "key", key)
    }
    return nil, false
  }
  return val, true
}

func (c *cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
  if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
    c.log.Warn("Cache set failed", "error", err, "key", key)
  }
}

func (c *cache) Close() error {
  return c.rdb.Close()
}
