// Package integrations provides the shared HTTP transport for platform APIs.
//
// # Overview
//
// [Client] wraps an [http.Client] with the behavior every platform client
// needs:
//
//   - Default headers (authentication tokens) on every request
//   - Bounded retries with backoff for timeouts and HTTP 429
//   - Optional request pacing with a token-bucket limiter
//   - Optional response caching through [cache.Cache]
//   - Request and cache events reported to [observability] hooks
//
// Platform-specific clients embed it:
//
//	type Client struct {
//	    *integrations.Client
//	    baseURL string
//	}
//
// # Failure Semantics
//
// [Client.Do] succeeds only on HTTP 200. Timeouts and 429 responses are
// retried; any other status or transport fault fails immediately with a
// coded error from [errors]. Callers decide whether a failure is fatal.
//
// The only platform today is [gitlab].
//
// [cache.Cache]: github.com/matzehuels/servicescan/pkg/cache.Cache
// [observability]: github.com/matzehuels/servicescan/pkg/observability
// [errors]: github.com/matzehuels/servicescan/pkg/errors
// [gitlab]: github.com/matzehuels/servicescan/pkg/integrations/gitlab
package integrations
