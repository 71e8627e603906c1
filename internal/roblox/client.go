package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"altlens/internal/metrics"
)

// Endpoints holds the base URL of each platform API host.
type Endpoints struct {
	Users      string `yaml:"users"`
	Friends    string `yaml:"friends"`
	Groups     string `yaml:"groups"`
	Thumbnails string `yaml:"thumbnails"`
	Badges     string `yaml:"badges"`
	Cloud      string `yaml:"cloud"`
}

// DefaultEndpoints returns the production hosts.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Users:      "https://users.roblox.com",
		Friends:    "https://friends.roblox.com",
		Groups:     "https://groups.roblox.com",
		Thumbnails: "https://thumbnails.roblox.com",
		Badges:     "https://badges.roblox.com",
		Cloud:      "https://apis.roblox.com",
	}
}

// SameHost points every endpoint at base. Used for proxies and tests.
func SameHost(base string) Endpoints {
	return Endpoints{Users: base, Friends: base, Groups: base, Thumbnails: base, Badges: base, Cloud: base}
}

// Options tunes an HTTPClient. Zero values fall back to defaults.
type Options struct {
	Endpoints Endpoints
	RPS       float64
	Burst     int

	// MaxAttempts bounds tries per request. The default of 1 disables retry.
	MaxAttempts int
	BaseBackoff time.Duration

	// PageDelay separates consecutive page requests of one pager.
	PageDelay time.Duration

	// Timeout bounds a single request; zero means no timeout.
	Timeout time.Duration
}

// HTTPClient talks to the platform's public and Open Cloud REST APIs.
type HTTPClient struct {
	endpoints   Endpoints
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration
	pageDelay   time.Duration
}

func NewHTTPClient(opts Options) *HTTPClient {
	if opts.Endpoints == (Endpoints{}) {
		opts.Endpoints = DefaultEndpoints()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 500 * time.Millisecond
	}
	if opts.PageDelay < 0 {
		opts.PageDelay = 0
	}
	return &HTTPClient{
		endpoints:   opts.Endpoints,
		httpClient:  &http.Client{Timeout: opts.Timeout},
		limiter:     newLimiter(opts.RPS, opts.Burst),
		maxAttempts: opts.MaxAttempts,
		baseBackoff: opts.BaseBackoff,
		pageDelay:   opts.PageDelay,
	}
}

func (c *HTTPClient) auth(req *http.Request, apiKey string) {
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	req.Header.Set("Accept", "application/json")
}

// getJSON issues a GET and decodes a 2xx body into out.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint, u, apiKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(ctx, endpoint, req, apiKey, out)
}

// postJSON issues a POST with a JSON body and decodes a 2xx body into out.
func (c *HTTPClient) postJSON(ctx context.Context, endpoint, u string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, endpoint, req, "", out)
}

func (c *HTTPClient) do(ctx context.Context, endpoint string, req *http.Request, apiKey string, out any) error {
	c.auth(req, apiKey)
	if err := wait(ctx, c.limiter); err != nil {
		return err
	}
	resp, err := c.doWithRetry(ctx, req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

// doWithRetry retries transport errors, 429 and 5xx with exponential backoff.
// The final attempt's response is returned as is so callers see its status.
func (c *HTTPClient) doWithRetry(ctx context.Context, req *http.Request, endpoint string) (*http.Response, error) {
	backoff := c.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			metrics.IncAPIRetry(endpoint)
		}
		r := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r.Body = body
		}
		resp, err := c.httpClient.Do(r)
		if err == nil {
			retryable := resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode <= 599)
			if !retryable || attempt == c.maxAttempts {
				return resp, nil
			}
			d := retryAfter(resp.Header.Get("Retry-After"), backoff)
			_ = resp.Body.Close()
			if err := sleep(ctx, jitter(d)); err != nil {
				return nil, err
			}
			backoff *= 2
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		if attempt < c.maxAttempts {
			if err := sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func retryAfter(header string, def time.Duration) time.Duration {
	if header == "" {
		return def
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return def
}

// jitter spreads wait by +/-20%.
func jitter(wait time.Duration) time.Duration {
	j := time.Duration(float64(wait) * 0.2)
	if j <= 0 {
		return wait
	}
	return wait - j + time.Duration(time.Now().UnixNano()%int64(2*j))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsContextError reports whether err comes from cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
