package cafeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL       = "http://localhost:3000/api"
	DefaultTimeout       = 5 * time.Second
	maxResponseSizeBytes = 1 << 20
)

type Config struct {
	URL     string        `split_words:"true" default:"http://localhost:3000/api"`
	Token   string        `split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"5s"`
}

// Client talks to the café backend. Each call is a single attempt bounded by
// the configured timeout.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &Client{
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/reservations", nil, req, expect(http.StatusCreated))
}

func (c *Client) ListMenuItems(ctx context.Context, filter MenuFilter) (*Response, error) {
	query := url.Values{}
	if filter.Dietary != "" {
		query.Set("dietary", filter.Dietary)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	return c.do(ctx, http.MethodGet, "/menu-items", query, nil, expect(http.StatusOK))
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/orders", nil, req, expect(http.StatusCreated))
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, nil, expect(http.StatusOK))
}

// SubmitFeedback reads no response fields, so any 201 counts as accepted
// whatever its body.
func (c *Client) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/feedback", nil, req, success{status: http.StatusCreated})
}

func (c *Client) GetContactInfo(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/cafe/contact-info", nil, nil, expect(http.StatusOK))
}

// success names the status an operation treats as success and whether the
// caller reads fields from that body.
type success struct {
	status   int
	jsonBody bool
}

func expect(status int) success {
	return success{status: status, jsonBody: true}
}

// do performs one request. A non-success status is not an error; the body is
// only required to be JSON on success, and only when the caller reads it.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	payload any,
	want success,
) (*Response, error) {
	if c == nil {
		return nil, errors.New("nil backend client")
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", classify(err), method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", classify(err), method, path, err)
	}

	if want.jsonBody && resp.StatusCode == want.status && !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: %s %s status=%d", ErrMalformedResponse, method, path, resp.StatusCode)
	}

	return &Response{StatusCode: resp.StatusCode, body: raw}, nil
}
