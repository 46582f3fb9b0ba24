package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store is the registry of currently valid refresh tokens. A refresh token
// is honored only while present here; logout removes it. Remove is
// idempotent in all implementations.
type Store interface {
	Add(ctx context.Context, token string) error
	Remove(ctx context.Context, token string) error
	Contains(ctx context.Context, token string) (bool, error)
}

// Tokens are keyed by their sha256 so the raw credential is never stored.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MemoryStore keeps the registry in-process. Sessions do not survive a
// restart; use the Redis store when that matters.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]struct{})}
}

func (s *MemoryStore) Add(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[hashToken(token)] = struct{}{}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, hashToken(token))
	return nil
}

func (s *MemoryStore) Contains(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[hashToken(token)]
	return ok, nil
}

const redisRegistryKey = "refresh_token_registry"

// RedisStore backs the registry with a Redis set so it is shared across
// instances and survives restarts.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Add(ctx context.Context, token string) error {
	return s.rdb.SAdd(ctx, redisRegistryKey, hashToken(token)).Err()
}

func (s *RedisStore) Remove(ctx context.Context, token string) error {
	return s.rdb.SRem(ctx, redisRegistryKey, hashToken(token)).Err()
}

func (s *RedisStore) Contains(ctx context.Context, token string) (bool, error) {
	return s.rdb.SIsMember(ctx, redisRegistryKey, hashToken(token)).Result()
}
