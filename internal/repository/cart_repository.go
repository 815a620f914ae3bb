package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/persistence"
)

// CartRepository holds the per-reseller cart. Carts are ephemeral session
// state, never persisted to the tables.
type CartRepository interface {
	Get(ctx context.Context, email string) ([]domain.CartLine, error)
	Add(ctx context.Context, email string, line domain.CartLine) error
	Clear(ctx context.Context, email string) error
}

// NewCartRepository returns a Redis-backed cart store, falling back to the
// in-memory store when Redis is not configured.
func NewCartRepository(r *persistence.Redis, ttl time.Duration) CartRepository {
	if r == nil || r.Client == nil {
		return NewMemoryCartRepository()
	}
	return &redisCartRepository{client: r.Client, ttl: ttl}
}

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func cartKey(email string) string {
	return "cart:" + email
}

func (r *redisCartRepository) Get(ctx context.Context, email string) ([]domain.CartLine, error) {
	payload, err := r.client.Get(ctx, cartKey(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *redisCartRepository) Add(ctx context.Context, email string, line domain.CartLine) error {
	lines, err := r.Get(ctx, email)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(append(lines, line))
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(email), payload, r.ttl).Err()
}

func (r *redisCartRepository) Clear(ctx context.Context, email string) error {
	return r.client.Del(ctx, cartKey(email)).Err()
}

type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartLine
}

// NewMemoryCartRepository returns an in-process cart store.
func NewMemoryCartRepository() CartRepository {
	return &memoryCartRepository{carts: make(map[string][]domain.CartLine)}
}

func (r *memoryCartRepository) Get(ctx context.Context, email string) ([]domain.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := r.carts[email]
	copied := make([]domain.CartLine, len(lines))
	copy(copied, lines)
	return copied, nil
}

func (r *memoryCartRepository) Add(ctx context.Context, email string, line domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[email] = append(r.carts[email], line)
	return nil
}

func (r *memoryCartRepository) Clear(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, email)
	return nil
}
