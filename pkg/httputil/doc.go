// Package httputil provides the retry policy used by the platform API client.
//
// # Overview
//
// [Policy] runs an operation up to a bounded number of attempts. Only
// errors wrapped in [RetryableError] are retried; everything else is
// returned immediately. Each retryable error may carry its own backoff
// schedule, which is how the client distinguishes its two transient
// conditions:
//
//   - Timeouts back off [TimeoutBackoff]: 1s, 2s, 4s, ...
//   - HTTP 429 responses back off [RateLimitBackoff]: 2s, 4s, 8s, ...
//
// No Retry-After header is consulted; the schedule is purely exponential.
//
// Usage:
//
//	p := httputil.Policy{Attempts: 3}
//	err := p.Do(ctx, func(attempt int) error {
//	    resp, err := send()
//	    if isTimeout(err) {
//	        return &httputil.RetryableError{Err: err, Delay: httputil.TimeoutBackoff}
//	    }
//	    return err
//	})
//
// # Sleeping
//
// Waits go through [Policy.Sleep], which defaults to a context-aware timer.
// Tests substitute a recorder so backoff schedules can be asserted without
// real delays. No sleep happens after the final attempt.
package httputil
