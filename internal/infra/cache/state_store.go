package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

const stateKeyPrefix = "oauth:state:"

// NewStateStore picks the Redis store when a client is available.
func NewStateStore(client *redis.Client) service.StateStore {
	if client == nil {
		return NewMemoryStateStore(time.Now)
	}

	return &redisStateStore{client: client}
}

type redisStateStore struct {
	client *redis.Client
}

func (s *redisStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, stateKeyPrefix+state, 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "store oauth state")
	}

	return nil
}

// Consume uses GETDEL so a state can be redeemed exactly once.
func (s *redisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, stateKeyPrefix+state).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, errors.Wrap(err, "consume oauth state")
	}

	return true, nil
}

// MemoryStateStore keeps states in a map; suitable for a single instance.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

func NewMemoryStateStore(now func() time.Time) *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]time.Time),
		now:    now,
	}
}

func (s *MemoryStateStore) Save(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, expiry := range s.states {
		if !now.Before(expiry) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(ttl)

	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)

	return s.now().Before(expiry), nil
}
