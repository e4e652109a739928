// Package retrylimit retries calls to rate limited APIs with exponential
// backoff, slowing a shared limiter down whenever the server pushes back.
//
//	lim := retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5)
//	err := retrylimit.Do(ctx, lim, retrylimit.DefaultPolicy(), classify, func() error {
//	    return doSomeWork()
//	})
package retrylimit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// AdaptiveLimiter is a rate limiter that speeds up on success and backs off
// when the server signals overload. It is safe for concurrent use.
type AdaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min, max  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

// NewAdaptiveLimiter starts at initial requests per second and stays within
// [min, max]. stepUp is added on success, stepDown multiplies on failure.
func NewAdaptiveLimiter(initial, min, max, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if min <= 0 {
		min = 1
	}
	if initial < min {
		initial = min
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, burst(initial)),
		min:      min,
		max:      max,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// Success raises the rate unless the server pushed back recently.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.set(a.limiter.Limit() + a.stepUp)
	}
}

// RateLimited lowers the rate.
func (a *AdaptiveLimiter) RateLimited() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.set(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// Limit returns the current requests per second.
func (a *AdaptiveLimiter) Limit() rate.Limit {
	return a.limiter.Limit()
}

func (a *AdaptiveLimiter) set(l rate.Limit) {
	l = max(a.min, min(a.max, l))
	if l != a.limiter.Limit() {
		a.limiter.SetLimit(l)
		a.limiter.SetBurst(burst(l))
	}
}

func burst(l rate.Limit) int {
	return max(1, int(l))
}

// Outcome is how a Classifier judges a failed attempt.
type Outcome int

const (
	// Fatal stops retrying and returns the error.
	Fatal Outcome = iota
	// Retry tries again after the backoff delay.
	Retry
	// Throttled slows the limiter down and tries again.
	Throttled
)

// Classifier decides what to do with an error returned by an attempt.
type Classifier func(error) Outcome

// Policy configures backoff between attempts.
type Policy struct {
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
	Log          zerolog.Logger
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts:     3,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
		Jitter:       true,
		Log:          zerolog.Nop(),
	}
}

// Do runs fn until it succeeds, classify says Fatal, the attempts run out or
// ctx is done. lim may be nil. The last error is returned wrapped.
func Do(ctx context.Context, lim *AdaptiveLimiter, p Policy, classify Classifier, fn func() error) error {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}
	delay := p.InitialDelay

	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		}

		if err = fn(); err == nil {
			if lim != nil {
				lim.Success()
			}
			if attempt > 1 {
				p.Log.Debug().Int("attempt", attempt).Msg("Succeeded after retry")
			}
			return nil
		}

		switch classify(err) {
		case Fatal:
			return err
		case Throttled:
			if lim != nil {
				lim.RateLimited()
			}
		}
		if attempt == p.Attempts {
			break
		}

		wait := delay
		if p.Jitter && wait > 0 {
			wait += rand.N(wait/4 + 1)
		}
		p.Log.Warn().Err(err).Int("attempt", attempt).Dur("sleep", wait).Msg("Request failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay = min(time.Duration(float64(delay)*p.Multiplier), p.MaxDelay)
	}
	return fmt.Errorf("gave up after %d attempts: %w", p.Attempts, err)
}
