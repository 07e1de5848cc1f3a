package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

const submitLimiterWindow = time.Hour

// limiterStore is the slice of the redis client the limiter needs.
type limiterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// SubmitLimiter throttles inquiry submissions per requester email using a
// Redis counter. A Redis outage never blocks submissions; the guard simply
// stands down.
type SubmitLimiter struct {
	store   limiterStore
	perHour int
	logger  *zap.Logger
}

// NewSubmitLimiter builds the limiter. A nil client or non-positive limit
// disables throttling.
func NewSubmitLimiter(client *redis.Client, perHour int, logger *zap.Logger) *SubmitLimiter {
	if client == nil || perHour <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitLimiter{store: client, perHour: perHour, logger: logger}
}

// Allow records one submission attempt for the email and rejects it when the
// hourly budget is exhausted.
func (l *SubmitLimiter) Allow(ctx context.Context, email string) error {
	if l == nil {
		return nil
	}
	key := "inquiry:submit:" + strings.ToLower(strings.TrimSpace(email))

	count, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("submit limiter unavailable", zap.Error(err))
		return nil
	}
	if count == 1 {
		if err := l.store.Expire(ctx, key, submitLimiterWindow).Err(); err != nil {
			l.logger.Warn("submit limiter expire failed", zap.Error(err))
		}
	}
	if count > int64(l.perHour) {
		return apperrors.NewRateLimited("too many inquiries; try again later")
	}
	return nil
}
