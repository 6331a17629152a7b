package userservice

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/themeswitch/internal/model"
)

const (
	// DefaultTimeout bounds a single request when the caller's client has none.
	DefaultTimeout = 10 * time.Second

	// MePath is the profile endpoint of the signed-in user.
	MePath = "/api/users/me/"

	// RequestIDHeader carries the per-request ULID.
	RequestIDHeader = "X-Request-ID"

	maxErrorBodyBytes = 4 * 1024
)

// ErrNoBaseURL is returned when the client has no service URL configured.
var ErrNoBaseURL = errors.New("user service base URL is empty")

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("user service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("user service returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the user service over HTTP/JSON.
type Client struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewClient constructs a client with defaults applied.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
	}
}

// GetUser fetches the signed-in user's profile.
func (c *Client) GetUser(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, MePath, nil, &u); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpdateUser sends a partial profile update and returns the stored profile.
func (c *Client) UpdateUser(ctx context.Context, update model.UserUpdate) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPatch, MePath, update, &u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

type requestIDKey struct{}

// WithRequestID attaches a request ID that the client sends instead of
// generating its own.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID attached to ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// NewRequestID generates a ULID request ID.
func NewRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	baseURL, err := c.baseURL()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	id := RequestID(ctx)
	if id == "" {
		id = NewRequestID()
	}
	req.Header.Set(RequestIDHeader, id)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) baseURL() (string, error) {
	if c == nil {
		return "", errors.New("user service client is nil")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		return "", ErrNoBaseURL
	}
	return baseURL, nil
}

func (c *Client) httpClient() *http.Client {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: DefaultTimeout}
	}
	return c.Client
}
