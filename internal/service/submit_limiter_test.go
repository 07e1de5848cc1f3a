package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

type fakeLimiterStore struct {
	counts      map[string]int64
	expirations map[string]time.Duration
	failing     bool
}

func newFakeLimiterStore() *fakeLimiterStore {
	return &fakeLimiterStore{
		counts:      map[string]int64{},
		expirations: map[string]time.Duration{},
	}
}

func (f *fakeLimiterStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.failing {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeLimiterStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if f.failing {
		return redis.NewBoolResult(false, errors.New("connection refused"))
	}
	f.expirations[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestSubmitLimiterEnforcesHourlyBudget(t *testing.T) {
	store := newFakeLimiterStore()
	limiter := &SubmitLimiter{store: store, perHour: 2, logger: zap.NewNop()}

	require.NoError(t, limiter.Allow(context.Background(), "hanako@example.com"))
	require.NoError(t, limiter.Allow(context.Background(), "Hanako@Example.com "))

	err := limiter.Allow(context.Background(), "hanako@example.com")
	require.Error(t, err)
	require.Equal(t, "RATE_LIMITED", apperrors.ToDomainError(err).Code)

	// casing and whitespace collapse onto one counter with one TTL
	require.Len(t, store.counts, 1)
	require.Equal(t, time.Hour, store.expirations["inquiry:submit:hanako@example.com"])
}

func TestSubmitLimiterFailsOpenOnRedisError(t *testing.T) {
	store := newFakeLimiterStore()
	store.failing = true
	limiter := &SubmitLimiter{store: store, perHour: 1, logger: zap.NewNop()}

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Allow(context.Background(), "hanako@example.com"))
	}
}

func TestSubmitLimiterDisabledWhenUnconfigured(t *testing.T) {
	require.Nil(t, NewSubmitLimiter(nil, 10, zap.NewNop()))

	var limiter *SubmitLimiter
	require.NoError(t, limiter.Allow(context.Background(), "hanako@example.com"))
}
