package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/servicescan/pkg/cache"
	apperrors "github.com/matzehuels/servicescan/pkg/errors"
	"github.com/matzehuels/servicescan/pkg/httputil"
	"github.com/matzehuels/servicescan/pkg/observability"
)

// Options configures a Client. The zero value is usable.
type Options struct {
	// Headers are sent with every request.
	Headers map[string]string
	// Timeout bounds a single attempt. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the total number of attempts per call. Defaults to 3.
	MaxRetries int
	// RateLimit caps outgoing requests per second. Zero means unlimited.
	RateLimit float64
	// Cache stores decoded responses for Cached. Defaults to a NullCache.
	Cache cache.Cache
	// Keyer derives cache keys. Defaults to cache.NewDefaultKeyer.
	Keyer cache.Keyer
	// Sleep waits between attempts. Defaults to httputil.Sleep.
	Sleep httputil.Sleeper
	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// Client provides shared HTTP functionality for platform API clients.
// It handles retries, request pacing, response caching and common headers.
// A Client is safe for concurrent use; all callers share one connection pool.
type Client struct {
	http    *http.Client
	headers map[string]string
	limiter *rate.Limiter
	cache   cache.Cache
	keyer   cache.Keyer
	retry   httputil.Policy
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{
		http:    hc,
		headers: opts.Headers,
		cache:   opts.Cache,
		keyer:   opts.Keyer,
		retry: httputil.Policy{
			Attempts: opts.MaxRetries,
			Sleep:    opts.Sleep,
		},
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// Do sends a request and returns the response of the first successful
// attempt. Only HTTP 200 counts as success.
//
// A transport timeout is retried after 2^attempt seconds and HTTP 429 after
// 2^(attempt+1) seconds. Every other status is returned at once as an
// HTTP_ERROR (NOT_FOUND for 404), and any other transport fault as a
// NETWORK_ERROR. When attempts run out the last error is returned.
func (c *Client) Do(ctx context.Context, method, rawURL string, params url.Values) (*Response, error) {
	u, err := withParams(rawURL, params)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid request URL %q", rawURL)
	}

	var resp *Response
	err = c.retry.Do(ctx, func(attempt int) error {
		r, err := c.attempt(ctx, method, u, attempt)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		var re *httputil.RetryableError
		if errors.As(err, &re) {
			return nil, re.Err
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) attempt(ctx context.Context, method string, u *url.URL, attempt int) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, u.Host, u.Path)
	start := time.Now()

	httpResp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, u.Host, u.Path, err)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case isTimeout(ctx, err):
			return nil, &httputil.RetryableError{
				Err:   apperrors.Wrap(apperrors.ErrCodeTimeout, err, "%s %s timed out", method, u.Path),
				Delay: httputil.TimeoutBackoff,
			}
		default:
			return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, fmt.Errorf("%w: %v", ErrNetwork, err), "%s %s", method, u.Path)
		}
	}
	defer httpResp.Body.Close()

	hooks.OnResponse(ctx, method, u.Host, u.Path, httpResp.StatusCode, time.Since(start))

	if err := checkStatus(httpResp.StatusCode, u, attempt); err != nil {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		return nil, err
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, fmt.Errorf("%w: %v", ErrNetwork, err), "read %s", u.Path)
	}
	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

func checkStatus(code int, u *url.URL, attempt int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err:   &apperrors.RateLimitedError{Attempt: attempt, URL: u.Path},
			Delay: httputil.RateLimitBackoff,
		}
	case code == http.StatusNotFound:
		return apperrors.Wrap(apperrors.ErrCodeNotFound, ErrNotFound, "%s", u.Path)
	default:
		return apperrors.Wrap(apperrors.ErrCodeHTTP, fmt.Errorf("%w: status %d", ErrNetwork, code), "%s", u.Path)
	}
}

// GetJSON performs a GET and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) (*Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, rawURL, params)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode %s", rawURL)
	}
	return resp, nil
}

// Cached retrieves v from the cache or executes fetch and caches the result.
// namespace groups related keys ("tree", "content") for hooks and key
// derivation. Cache failures never fail the call.
func (c *Client) Cached(ctx context.Context, namespace, key string, ttl time.Duration, v any, fetch func() error) error {
	hooks := observability.Cache()
	k := c.keyer.HTTPKey(namespace, key)

	if data, ok, err := c.cache.Get(ctx, k); err == nil && ok {
		if json.Unmarshal(data, v) == nil {
			hooks.OnCacheHit(ctx, namespace)
			return nil
		}
	}
	hooks.OnCacheMiss(ctx, namespace)

	if err := fetch(); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, k, data, ttl) == nil {
			hooks.OnCacheSet(ctx, namespace, len(data))
		}
	}
	return nil
}
