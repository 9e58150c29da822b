package sources

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrRateLimited marks a resolve refused by the local token bucket.
// Callers treat it as a transient source failure.
var ErrRateLimited = errors.New("source rate limit exhausted")

// rateLimiter is a token bucket guarding outbound calls to one remote
// service. The public name-resolution services this engine talks to
// throttle aggressively, so we throttle first.
type rateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // tokens per second
	last     time.Time
}

// newRateLimiter allows bursts of `burst` calls refilling at
// `perMinute` tokens per minute.
func newRateLimiter(burst, perMinute int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	if perMinute < 1 {
		perMinute = 1
	}
	return &rateLimiter{
		tokens:   float64(burst),
		capacity: float64(burst),
		rate:     float64(perMinute) / 60.0,
		last:     time.Now(),
	}
}

// Allow consumes one token if available.
func (l *rateLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.last).Seconds()
	if elapsed > 0 {
		l.tokens = math.Min(l.capacity, l.tokens+elapsed*l.rate)
		l.last = now
	}

	if l.tokens < 1.0 {
		return false
	}
	l.tokens -= 1.0
	return true
}
