package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Endpoint groups of the remote API that get their own budget.
const (
	GroupSearch       = "search"
	GroupLocations    = "locations"
	GroupAuth         = "auth"
	GroupBooking      = "booking"
	GroupPayment      = "payment"
	GroupNotification = "notification"
)

type EndpointLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst"`
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewEndpointLimiter(config RateLimitConfig) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewEndpointLimiterWithDefaults() *EndpointLimiter {
	return NewEndpointLimiter(DefaultConfig())
}

func (l *EndpointLimiter) GetLimiter(group string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[group]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[group]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[group] = limiter
	return limiter
}

func (l *EndpointLimiter) SetLimit(group string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[group] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the group has budget or ctx is done. A nil limiter
// never blocks.
func (l *EndpointLimiter) Wait(ctx context.Context, group string) error {
	if l == nil {
		return nil
	}
	return l.GetLimiter(group).Wait(ctx)
}
