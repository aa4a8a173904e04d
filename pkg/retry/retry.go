// Package retry runs bounded retries of DDC/CI exchanges.
package retry

import (
	"context"
	"time"
)

// Policy bounds the retries of one operation.
type Policy struct {
	// Attempts is the total number of tries, including the first.
	// Zero uses DefaultAttempts.
	Attempts int

	// Delay is the minimum wait between attempts. Zero uses DefaultDelay;
	// a negative value disables waiting.
	Delay time.Duration

	// Jitter lengthens each wait by a random fraction of Delay, up to
	// Jitter*Delay. Zero keeps the delay fixed.
	Jitter float64
}

// DefaultPolicy returns three attempts 50ms apart.
func DefaultPolicy() Policy {
	return Policy{Attempts: DefaultAttempts, Delay: DefaultDelay}
}

func (p Policy) attempts() int {
	if p.Attempts <= 0 {
		return DefaultAttempts
	}
	return p.Attempts
}

// Do calls fn until it succeeds, returns an error retryable rejects, or the
// policy runs out of attempts. It returns the number of attempts made and
// the last error.
//
// Cancelling ctx stops further attempts; the context error is returned
// unless fn already failed, in which case fn's error is kept.
func Do(ctx context.Context, p Policy, fn func(attempt int) error, retryable func(error) bool) (int, error) {
	backoff := NewBackoff(p.Delay, p.Jitter)
	limit := p.attempts()

	var err error
	for attempt := 1; attempt <= limit; attempt++ {
		if attempt > 1 {
			if werr := wait(ctx, backoff.Next()); werr != nil {
				return attempt - 1, err
			}
		} else if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		err = fn(attempt)
		if err == nil {
			return attempt, nil
		}
		if !retryable(err) {
			return attempt, err
		}
	}
	return limit, err
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
