package cache

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"pgbee/config"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

const (
	defaultRateCapacity = 20
	defaultRatePrefix   = "rl"
)

// tokenBucketScript refills by whole intervals, takes one token when
// available and reports {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

type limiterSettings struct {
	capacity int
	interval time.Duration
	ttl      time.Duration
	prefix   string
}

func settingsFrom(cfg *config.RateLimitConfig) limiterSettings {
	s := limiterSettings{
		capacity: defaultRateCapacity,
		interval: 3 * time.Second,
		ttl:      10 * time.Minute,
		prefix:   defaultRatePrefix,
	}
	if cfg == nil {
		return s
	}
	if cfg.Capacity > 0 {
		s.capacity = cfg.Capacity
	}
	if cfg.RefillInterval > 0 {
		s.interval = cfg.RefillInterval
	}
	if cfg.TTL > 0 {
		s.ttl = cfg.TTL
	}
	if cfg.Prefix != "" {
		s.prefix = cfg.Prefix
	}
	if minTTL := 5 * s.interval; s.ttl < minTTL {
		s.ttl = minTTL
	}

	return s
}

// NewRateLimiter returns nil when rate limiting is disabled.
func NewRateLimiter(cfg *config.Config, client *redis.Client) service.RateLimiter {
	if cfg.RateLimit == nil || !cfg.RateLimit.Enabled {
		return nil
	}

	settings := settingsFrom(cfg.RateLimit)
	if client == nil {
		return newLocalRateLimiter(settings)
	}

	return &redisRateLimiter{client: client, settings: settings, now: time.Now}
}

type redisRateLimiter struct {
	client   *redis.Client
	settings limiterSettings
	now      func() time.Time
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string) (*service.RateDecision, error) {
	vals, err := tokenBucketScript.Run(ctx, l.client, []string{l.settings.prefix + ":" + key},
		l.now().UnixMilli(),
		l.settings.capacity,
		l.settings.interval.Milliseconds(),
		int64(l.settings.ttl/time.Second),
	).Slice()
	if err != nil {
		return nil, errors.Wrap(err, "run token bucket script")
	}
	if len(vals) != 3 {
		return nil, errors.Errorf("unexpected token bucket result %#v", vals)
	}

	retryMs := asInt64(vals[2])

	return &service.RateDecision{
		Allowed:    asInt64(vals[0]) == 1,
		Limit:      l.settings.capacity,
		Remaining:  int(asInt64(vals[1])),
		RetryAfter: time.Duration(math.Max(0, float64(retryMs))) * time.Millisecond,
	}, nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}

	n, _ := strconv.ParseInt(fmt.Sprint(v), 10, 64)

	return n
}

// localRateLimiter keeps one x/time/rate bucket per key in memory.
type localRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*localBucket
	settings limiterSettings
	now      func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalRateLimiter(settings limiterSettings) *localRateLimiter {
	return &localRateLimiter{
		buckets:  make(map[string]*localBucket),
		settings: settings,
		now:      time.Now,
	}
}

func (l *localRateLimiter) Allow(_ context.Context, key string) (*service.RateDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(rate.Every(l.settings.interval), l.settings.capacity)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	decision := &service.RateDecision{Limit: l.settings.capacity}

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		decision.RetryAfter = delay
	} else {
		decision.Allowed = true
	}
	decision.Remaining = max(0, int(b.limiter.TokensAt(now)))

	return decision, nil
}

func (l *localRateLimiter) evict(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.settings.ttl {
			delete(l.buckets, k)
		}
	}
}
