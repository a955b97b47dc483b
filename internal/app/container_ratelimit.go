package app

import (
	"time"

	"transportmarket/internal/config"
	"transportmarket/internal/http/middleware/ratelimit"
	"transportmarket/internal/logx"
)

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if rl.Limit <= 0 {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketPerWindow(clock, rl.Limit, rl.Window, 10*time.Minute, 100_000)
}

func newRateLimitMiddleware(logger logx.Logger, m *metricsSet, limiter ratelimit.Limiter) *ratelimit.Middleware {
	return ratelimit.New(logger, m.RateLimitExceeded, limiter)
}
