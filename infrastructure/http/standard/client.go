// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Applies a per-host rate limit to stay polite toward public endpoints

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"ao-radar-api/core/interfaces"
)

const (
	maxRetries = 3
	userAgent  = "AORadar/1.0"

	// Outbound politeness budget per host.
	perHostRate  = rate.Limit(2)
	perHostBurst = 4
)

// StandardHTTPClient implements the HTTPClient interface using the standard
// library transport with retries and per-host throttling.
type StandardHTTPClient struct {
	client   *http.Client
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		limiters: make(map[string]*rate.Limiter),
	}
}

// Get performs an HTTP GET request with exponential-backoff retries on
// transport failures and 5xx responses.
func (c *StandardHTTPClient) Get(ctx context.Context, rawURL string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)

	if err := c.waitForHost(ctx, req.URL); err != nil {
		return nil, err
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		// Close body for retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// waitForHost blocks until the target host's limiter grants a slot.
func (c *StandardHTTPClient) waitForHost(ctx context.Context, u *url.URL) error {
	host := u.Hostname()
	if host == "" {
		return nil
	}

	c.mu.Lock()
	limiter, ok := c.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(perHostRate, perHostBurst)
		c.limiters[host] = limiter
	}
	c.mu.Unlock()

	return limiter.Wait(ctx)
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
