package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/trhprace/intelligence/internal/logger"
)

// DefaultIngestRPS caps how many signals per second the pipeline accepts
// when the configuration does not say otherwise. Scrapers can burst far
// above what the single-writer store enjoys.
const DefaultIngestRPS = 200

// RateLimiter paces signal ingestion.
type RateLimiter struct {
	limiter *rate.Limiter
	log     logger.Logger
}

// NewRateLimiter creates an ingest rate limiter. Burst defaults to rps.
func NewRateLimiter(rps, burst int, log logger.Logger) *RateLimiter {
	if rps <= 0 {
		rps = DefaultIngestRPS
	}
	if burst <= 0 {
		burst = rps
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

// Wait blocks until the limiter allows one more signal.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.log.Warn("rate limiter wait failed", logger.Error(err))
		return err
	}
	return nil
}

// Allow reports whether one more signal may proceed without waiting.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// SetLimit updates the sustained rate.
func (r *RateLimiter) SetLimit(rps int) {
	r.limiter.SetLimit(rate.Limit(rps))
	r.log.Info("rate limit updated", logger.Int("rps", rps))
}
