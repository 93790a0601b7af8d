package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Repository stores per-user sharing flags and connection requests.
type Repository interface {
	SharingFlag(ctx context.Context, userID string) (value, found bool, err error)
	SaveSharingFlag(ctx context.Context, userID string, enabled bool) error
	SaveRequest(ctx context.Context, userID string, req ConnectionRequest) error
	Request(ctx context.Context, userID string) (ConnectionRequest, bool, error)
}

// MemoryRepository keeps preferences in memory, keyed by user id.
type MemoryRepository struct {
	mu       sync.RWMutex
	sharing  map[string]bool
	requests map[string]ConnectionRequest
}

// NewMemoryRepository creates an empty in-memory preference store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sharing:  make(map[string]bool),
		requests: make(map[string]ConnectionRequest),
	}
}

// SharingFlag returns the stored flag and whether it was ever set.
func (r *MemoryRepository) SharingFlag(_ context.Context, userID string) (bool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, found := r.sharing[userID]
	return value, found, nil
}

// SaveSharingFlag persists the flag.
func (r *MemoryRepository) SaveSharingFlag(_ context.Context, userID string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sharing[userID] = enabled
	return nil
}

// SaveRequest overwrites the user's connection request.
func (r *MemoryRepository) SaveRequest(_ context.Context, userID string, req ConnectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[userID] = req
	return nil
}

// Request returns the stored connection request, if any.
func (r *MemoryRepository) Request(_ context.Context, userID string) (ConnectionRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, found := r.requests[userID]
	return req, found, nil
}

// RedisRepository persists preferences under the documented key shapes:
// "sharing_<userId>" as a string-encoded boolean and "talent_flag_<userId>"
// as JSON.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository wires a Redis-backed preference store.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func sharingKey(userID string) string {
	return "sharing_" + userID
}

func requestKey(userID string) string {
	return "talent_flag_" + userID
}

// SharingFlag returns the stored flag and whether it was ever set.
func (r *RedisRepository) SharingFlag(ctx context.Context, userID string) (bool, bool, error) {
	raw, err := r.client.Get(ctx, sharingKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("preference: load sharing flag: %w", err)
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("preference: decode sharing flag %q: %w", raw, err)
	}
	return value, true, nil
}

// SaveSharingFlag persists the flag as "true"/"false".
func (r *RedisRepository) SaveSharingFlag(ctx context.Context, userID string, enabled bool) error {
	if err := r.client.Set(ctx, sharingKey(userID), strconv.FormatBool(enabled), 0).Err(); err != nil {
		return fmt.Errorf("preference: save sharing flag: %w", err)
	}
	return nil
}

// SaveRequest overwrites the user's connection request.
func (r *RedisRepository) SaveRequest(ctx context.Context, userID string, req ConnectionRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("preference: encode request: %w", err)
	}
	if err := r.client.Set(ctx, requestKey(userID), payload, 0).Err(); err != nil {
		return fmt.Errorf("preference: save request: %w", err)
	}
	return nil
}

// Request returns the stored connection request, if any.
func (r *RedisRepository) Request(ctx context.Context, userID string) (ConnectionRequest, bool, error) {
	payload, err := r.client.Get(ctx, requestKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ConnectionRequest{}, false, nil
		}
		return ConnectionRequest{}, false, fmt.Errorf("preference: load request: %w", err)
	}

	var req ConnectionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return ConnectionRequest{}, false, fmt.Errorf("preference: decode request: %w", err)
	}
	return req, true, nil
}
