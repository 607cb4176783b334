package httputil

import (
	"context"
	"errors"
	"time"
)

// DefaultAttempts is the attempt bound used when a Policy leaves it unset.
const DefaultAttempts = 3

// RetryableError wraps an error to indicate it should trigger a retry.
// Delay, when set, overrides the policy's doubling schedule for this error;
// it receives the zero-based attempt that failed.
type RetryableError struct {
	Err   error
	Delay func(attempt int) time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err so that [Policy.Do] retries it with the default schedule.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped with [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// TimeoutBackoff is the wait after a timed-out attempt: 2^attempt seconds.
func TimeoutBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// RateLimitBackoff is the wait after a 429 response: 2^(attempt+1) seconds.
func RateLimitBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt+1)) * time.Second
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default [Sleeper].
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Policy bounds and paces retries.
type Policy struct {
	// Attempts is the total number of tries (default 3).
	Attempts int
	// Delay is the initial wait for retryable errors without their own
	// schedule; it doubles after each retry (default 1s).
	Delay time.Duration
	// Sleep performs the waits (default [Sleep]).
	Sleep Sleeper
}

// Do executes fn until it succeeds, returns a non-retryable error, or the
// attempts are exhausted. fn receives the zero-based attempt number.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled
// while waiting.
func (p Policy) Do(ctx context.Context, fn func(attempt int) error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	delay := p.Delay
	if delay <= 0 {
		delay = time.Second
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for i := range attempts {
		err := fn(i)
		if err == nil {
			return nil
		}
		lastErr = err

		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.Delay != nil {
			wait = re.Delay(i)
		} else {
			delay *= 2
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
	return lastErr
}

// Retry executes fn up to attempts times with exponential backoff starting
// at delay. It only retries errors wrapped with [RetryableError].
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	p := Policy{Attempts: max(attempts, 1), Delay: delay}
	return p.Do(ctx, func(int) error { return fn() })
}

// RetryWithBackoff is a convenience wrapper around [Retry] with sensible
// defaults: 3 attempts with 1 second initial delay (doubling each retry).
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, time.Second, fn)
}
