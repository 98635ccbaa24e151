// internal/store/redis_store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore mirrors the session record into Redis under a single key.
// Useful when the client runs headless across several workers (CI jobs,
// automation agents) that should share one authenticated session.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int

	// Key namespaces the record; distinct profiles use distinct keys.
	Key string

	// TTL of 0 keeps the record until an explicit logout.
	TTL time.Duration
}

// NewRedisStore connects to Redis and verifies the connection before use.
func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("no Redis address provided")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = "blxck:session"
	}

	return &RedisStore{client: client, key: key, ttl: cfg.TTL, logger: logger}, nil
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (Record, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to read session from redis: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding unreadable session record",
				zap.String("key", s.key),
				zap.Error(err),
			)
		}
		return Record{}, false, nil
	}

	if !rec.Complete() {
		return Record{}, false, nil
	}
	return rec, true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
