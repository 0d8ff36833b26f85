// Package retry holds the one retry policy used for every call that may be repeated:
// connecting to the database, creating tables, reading order events and calling the
// analysis services.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy retries an operation up to MaxAttempts times, waiting between attempts as
// its schedule says. Attempts are counted from 1.
type Policy struct {
	MaxAttempts int
	schedule    func() backoff.BackOff
}

// Fixed waits the same delay between every attempt.
func Fixed(attempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: attempts,
		schedule:    func() backoff.BackOff { return backoff.NewConstantBackOff(delay) },
	}
}

// Exponential starts at initial and roughly doubles the wait after every attempt,
// with jitter, capped at 32 times initial.
func Exponential(attempts int, initial time.Duration) Policy {
	return Policy{
		MaxAttempts: attempts,
		schedule: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = 32 * initial
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

// BackOff returns a fresh, unbounded wait schedule of the policy. Loops that never
// give up, like the order event consumer, pace themselves with it.
func (p Policy) BackOff() backoff.BackOff {
	if p.schedule == nil {
		return &backoff.ZeroBackOff{}
	}
	return p.schedule()
}

// Permanent marks err as not worth retrying; Do returns the wrapped error at once.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs fn until it succeeds, returns a Permanent error, the attempts run out or
// ctx is done. The last error seen is returned, or ctx.Err() when ctx ended the wait.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(p.BackOff(), uint64(retries)), ctx)
	return backoff.Retry(func() error { return fn(ctx) }, b)
}
