// Package retry spaces out repeated attempts of a failing operation.
package retry

import (
	"math/rand"
	"time"
)

const jitterPct = 0.1 // 10% jitter

// Backoff yields exponentially growing delays with jitter: base, 2*base,
// 4*base, ... up to max, where it stays until Reset.
type Backoff struct {
	base    time.Duration
	max     time.Duration
	attempt int
	rng     *rand.Rand
}

// NewBackoff creates a Backoff starting at base and capped at ceiling. A
// ceiling below base is raised to base.
func NewBackoff(base, ceiling time.Duration) *Backoff {
	if base <= 0 {
		base = time.Second
	}
	if ceiling < base {
		ceiling = base
	}
	return &Backoff{
		base: base,
		max:  ceiling,
		// #nosec G404 -- math/rand is appropriate for backoff jitter; cryptographic randomness not needed
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the next delay and increments the attempt counter.
func (b *Backoff) Next() time.Duration {
	delay := b.base
	for i := 0; i < b.attempt && delay < b.max; i++ {
		delay *= 2
	}
	if delay > b.max {
		delay = b.max
	}

	b.attempt++
	return delay + b.jitter(delay)
}

// Reset resets the backoff to the initial state.
func (b *Backoff) Reset() {
	b.attempt = 0
}

// Attempt returns the current attempt number.
func (b *Backoff) Attempt() int {
	return b.attempt
}

// jitter returns a value between -jitterPct*delay and +jitterPct*delay.
func (b *Backoff) jitter(delay time.Duration) time.Duration {
	maxJitter := float64(delay) * jitterPct
	return time.Duration((b.rng.Float64()*2 - 1) * maxJitter)
}
