package layoutstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	layoutKeyPrefix = "maze:"
	lockKeySuffix   = ":train_lock"

	defaultLockExpiry = 10 * time.Minute
)

var (
	_ i.LayoutStore = &RedisLayoutStore{}
	_ i.Locker      = &RedisLayoutStore{}
)

// RedisLayoutStore keeps encoded maze layouts in Redis and guards mazes with distributed locks.
type RedisLayoutStore struct {
	client     *redis.Client
	locker     *redsync.Redsync
	ttl        time.Duration
	lockExpiry time.Duration
}

// NewRedisLayoutStore initializes a RedisLayoutStore with the provided Redis client and TTL.
// A zero TTL keeps layouts forever.
func NewRedisLayoutStore(client *redis.Client, ttlSeconds int) (*RedisLayoutStore, error) {
	if ttlSeconds < 0 {
		return nil, fmt.Errorf("negative layout ttl: %d", ttlSeconds)
	}

	store := &RedisLayoutStore{
		client:     client,
		ttl:        time.Duration(ttlSeconds) * time.Second,
		lockExpiry: defaultLockExpiry,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Save stores the encoded layout under the maze key, refreshing its expiration.
func (s *RedisLayoutStore) Save(ctx context.Context, id uuid.UUID, encoded string) error {
	return s.client.Set(ctx, layoutKey(id), encoded, s.ttl).Err()
}

// Load returns the encoded layout of a maze.
func (s *RedisLayoutStore) Load(ctx context.Context, id uuid.UUID) (string, error) {
	encoded, err := s.client.Get(ctx, layoutKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", i.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return encoded, nil
}

// Lock takes the maze lock with a single attempt.
func (s *RedisLayoutStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	mutex := s.locker.NewMutex(layoutKey(id)+lockKeySuffix, redsync.WithTries(1), redsync.WithExpiry(s.lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", i.ErrLocked, err)
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func layoutKey(id uuid.UUID) string {
	return layoutKeyPrefix + id.String()
}
