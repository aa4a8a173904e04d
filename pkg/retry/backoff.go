package retry

import (
	"math/rand"
	"sync"
	"time"
)

// Defaults for DDC/CI exchanges. Monitors need roughly 40-50ms between a
// failed exchange and the next attempt.
const (
	// DefaultAttempts is the number of tries per operation.
	DefaultAttempts = 3

	// DefaultDelay is the wait between attempts.
	DefaultDelay = 50 * time.Millisecond
)

// Backoff calculates delays between attempts. The delay is fixed; jitter
// only ever lengthens it, so no wait is shorter than the configured delay.
type Backoff struct {
	mu sync.Mutex

	delay  time.Duration
	jitter float64

	rng *rand.Rand
}

// NewBackoff creates a backoff that waits delay plus up to jitter*delay.
// A zero delay uses DefaultDelay and a negative one disables waiting.
// Jitter is clamped to [0, 1].
func NewBackoff(delay time.Duration, jitter float64) *Backoff {
	if delay == 0 {
		delay = DefaultDelay
	}
	if delay < 0 {
		delay = 0
	}
	jitter = min(max(jitter, 0), 1)

	return &Backoff{
		delay:  delay,
		jitter: jitter,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the next delay.
func (b *Backoff) Next() time.Duration {
	if b.jitter <= 0 || b.delay == 0 {
		return b.delay
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.delay + time.Duration(float64(b.delay)*b.jitter*b.rng.Float64())
}
