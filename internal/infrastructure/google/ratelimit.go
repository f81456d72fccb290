package google

import (
	"context"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Google API service for rate limiting purposes.
type ServiceType string

const (
	ServiceCalendar ServiceType = "calendar"
	ServiceTasks    ServiceType = "tasks"
	ServiceGmail    ServiceType = "gmail"
	ServiceDrive    ServiceType = "drive"
	ServiceContacts ServiceType = "contacts"
	ServiceSheets   ServiceType = "sheets"
	ServiceYouTube  ServiceType = "youtube"
	ServicePhotos   ServiceType = "photos"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimits provides conservative per-service defaults, well
// below Google's actual quotas.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceCalendar: {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceTasks:    {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceGmail:    {RequestsPerSecond: 2.0, BurstSize: 5},
	ServiceDrive:    {RequestsPerSecond: 8.0, BurstSize: 10},
	ServiceContacts: {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceSheets:   {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceYouTube:  {RequestsPerSecond: 5.0, BurstSize: 10},
	ServicePhotos:   {RequestsPerSecond: 2.0, BurstSize: 5},
}

// RateLimiter provides client-side rate limiting for Google API requests
// using a token bucket.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the limit.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
