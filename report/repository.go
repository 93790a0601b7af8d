package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound signals that no report exists for the user yet.
var ErrNotFound = errors.New("report: not found")

// Repository stores at most one report per user id.
type Repository interface {
	Save(ctx context.Context, rpt Report) error
	Get(ctx context.Context, userID string) (Report, error)
}

// MemoryRepository keeps reports in memory, keyed by user id.
type MemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]Report
}

// NewMemoryRepository creates an empty in-memory report store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reports: make(map[string]Report)}
}

// Save overwrites the user's report.
func (r *MemoryRepository) Save(_ context.Context, rpt Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[rpt.UserID] = rpt
	return nil
}

// Get returns the user's report or ErrNotFound.
func (r *MemoryRepository) Get(_ context.Context, userID string) (Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rpt, ok := r.reports[userID]
	if !ok {
		return Report{}, ErrNotFound
	}
	return rpt, nil
}

// RedisRepository persists reports as JSON under "report_<userId>".
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository wires a Redis-backed report store.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func reportKey(userID string) string {
	return "report_" + userID
}

// Save overwrites the user's report.
func (r *RedisRepository) Save(ctx context.Context, rpt Report) error {
	payload, err := json.Marshal(rpt)
	if err != nil {
		return fmt.Errorf("report: encode report: %w", err)
	}
	if err := r.client.Set(ctx, reportKey(rpt.UserID), payload, 0).Err(); err != nil {
		return fmt.Errorf("report: save report: %w", err)
	}
	return nil
}

// Get returns the user's report or ErrNotFound.
func (r *RedisRepository) Get(ctx context.Context, userID string) (Report, error) {
	payload, err := r.client.Get(ctx, reportKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Report{}, ErrNotFound
		}
		return Report{}, fmt.Errorf("report: load report: %w", err)
	}

	var rpt Report
	if err := json.Unmarshal(payload, &rpt); err != nil {
		return Report{}, fmt.Errorf("report: decode report: %w", err)
	}
	return rpt, nil
}
