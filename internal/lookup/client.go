// Package lookup fetches company records (시평, 실적, 소재지) from an external
// record service, rate limited to stay inside the provider's quota.
package lookup

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client looks up company records by name.
type Client interface {
	// Lookup fetches the record for a single company. A missing company is
	// (nil, false, nil), not an error.
	Lookup(ctx context.Context, name string) (map[string]any, bool, error)
}

// Option configures the lookup client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *client) {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithAPIKey sets the bearer token sent with each request.
func WithAPIKey(key string) Option {
	return func(c *client) {
		c.apiKey = key
	}
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a lookup Client for the given service base URL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(5, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// lookupResponse is the JSON envelope the record service returns.
type lookupResponse struct {
	Found  bool           `json:"found"`
	Record map[string]any `json:"record"`
}

func (c *client) Lookup(ctx context.Context, name string) (map[string]any, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, eris.Wrap(err, "lookup: rate limit")
	}

	params := url.Values{"name": {name}}
	reqURL := c.baseURL + "/companies?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, eris.Wrap(err, "lookup: build request")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, eris.Wrapf(err, "lookup: request for %s", name)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, eris.Errorf("lookup: service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, eris.Wrap(err, "lookup: read body")
	}

	var lr lookupResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, false, eris.Wrap(err, "lookup: parse response")
	}
	if !lr.Found {
		return nil, false, nil
	}
	return lr.Record, true, nil
}
