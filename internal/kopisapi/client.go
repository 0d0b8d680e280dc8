package kopisapi

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	baseURL   = "http://www.kopis.or.kr/openApi/restful"
	userAgent = "stagelog/0.1 (https://github.com/Another0Noob/stagelog)"
)
const (
	rateLimitRequests = 5
	rateLimitDuration = time.Second
)

var (
	// ErrMissingServiceKey is returned before any request when no KOPIS
	// service key has been configured.
	ErrMissingServiceKey = errors.New("kopis service key is not set")

	// ErrNotFound is returned when KOPIS answers with an empty result for a
	// single-record lookup.
	ErrNotFound = errors.New("not found")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client talks to the KOPIS open API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceKey  string
	userAgent   string
	rateLimiter *rate.Limiter
	log         *zap.Logger
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger supplies a logger for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithRateLimit allows n requests per interval.
func WithRateLimit(n int, per time.Duration) Option {
	return func(c *Client) {
		if n <= 0 || per <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.rateLimiter = rate.NewLimiter(rate.Every(per/time.Duration(n)), n)
	}
}

// WithClock overrides the time source used for default date windows.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new KOPIS API client.
func NewClient(serviceKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		serviceKey:  serviceKey,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDuration/time.Duration(rateLimitRequests)), rateLimitRequests),
		log:         zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs a GET against the KOPIS API with the service key attached.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	if c.serviceKey == "" {
		return nil, ErrMissingServiceKey
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("service", c.serviceKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	c.log.Debug("kopis request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return resp, nil
}

// doXML executes a request and decodes the XML body into out.
func (c *Client) doXML(ctx context.Context, endpoint string, params url.Values, out any) error {
	resp, err := c.doRequest(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := xml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode xml: %w", err)
	}
	return nil
}

// toValues converts a params struct to url.Values using its url tags.
func toValues(q any) url.Values {
	v := url.Values{}
	rv := reflect.ValueOf(q)
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag := sf.Tag.Get("url")
		if tag == "" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		omitempty := opts == "omitempty"

		fv := rv.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		v.Set(name, strings.TrimSpace(fmt.Sprint(fv.Interface())))
	}
	return v
}
