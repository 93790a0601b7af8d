package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// sessionKey is the durable key holding the active identity record.
const sessionKey = "session_user"

// Repository persists the single session record for one client context.
type Repository interface {
	Save(ctx context.Context, identity Identity) error
	Load(ctx context.Context) (Identity, bool, error)
	Clear(ctx context.Context) error
}

// MemoryRepository keeps the session record in process memory. It is the
// in-process mock store; a transport-backed deployment swaps in the Redis
// implementation without touching the service.
type MemoryRepository struct {
	mu       sync.RWMutex
	identity *Identity
}

// NewMemoryRepository creates an empty in-memory session store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save overwrites the durable session record.
func (r *MemoryRepository) Save(_ context.Context, identity Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity = &identity
	return nil
}

// Load returns the stored record; a missing record is not an error.
func (r *MemoryRepository) Load(_ context.Context) (Identity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.identity == nil {
		return Identity{}, false, nil
	}
	return *r.identity, true, nil
}

// Clear removes the session record.
func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity = nil
	return nil
}

// RedisRepository persists the session record as JSON under "session_user",
// optionally prefixed with a per-client namespace.
type RedisRepository struct {
	client *redis.Client
	key    string
}

// NewRedisRepository wires a Redis-backed session store. An empty namespace
// uses the bare session key.
func NewRedisRepository(client *redis.Client, namespace string) *RedisRepository {
	key := sessionKey
	if namespace != "" {
		key = namespace + ":" + sessionKey
	}
	return &RedisRepository{client: client, key: key}
}

// Save overwrites the durable session record.
func (r *RedisRepository) Save(ctx context.Context, identity Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("session: encode identity: %w", err)
	}
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("session: save identity: %w", err)
	}
	return nil
}

// Load returns the stored record; a missing key is not an error.
func (r *RedisRepository) Load(ctx context.Context) (Identity, bool, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, false, nil
		}
		return Identity{}, false, fmt.Errorf("session: load identity: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return Identity{}, false, fmt.Errorf("session: decode identity: %w", err)
	}
	return identity, true, nil
}

// Clear removes the session record.
func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("session: clear identity: %w", err)
	}
	return nil
}
