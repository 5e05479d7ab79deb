// Package upstream is the shared HTTP client behind every external lookup.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"golang.org/x/time/rate"
)

const userAgent = "asteroid-impact-service/1.0"

// maxErrorBody caps how much of an error response is kept in the error message.
const maxErrorBody = 512

// Client issues rate limited JSON requests to one upstream provider.
// Every failure wraps domain.ErrUpstreamUnavailable.
type Client struct {
	name       string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
}

// New creates a client for the named provider allowing ratePerSec requests
// per second with a burst of one.
func New(name string, timeout time.Duration, ratePerSec float64, metrics *observability.Metrics) *Client {
	return &Client{
		name: name,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		metrics: metrics,
	}
}

// Name returns the provider name used in metrics and logs.
func (c *Client) Name() string {
	return c.name
}

// GetJSON fetches rawURL with the given query and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

// PostFormJSON posts form as application/x-www-form-urlencoded and decodes
// the body into out.
func (c *Client) PostFormJSON(ctx context.Context, rawURL string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	err := c.roundTrip(req, out)
	c.observe(err)
	return err
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("%w: %s rate limit wait: %w", domain.ErrUpstreamUnavailable, c.name, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.UpstreamDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return fmt.Errorf("%w: %s request: %w", domain.ErrUpstreamUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s API error: status %d: %s", domain.ErrUpstreamUnavailable, c.name, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s decode response: %w", domain.ErrUpstreamUnavailable, c.name, err)
	}
	return nil
}

func (c *Client) observe(err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.LookupRequests.WithLabelValues(c.name, outcome).Inc()
}
