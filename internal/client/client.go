package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/httpx"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

const (
	DefaultTimeout = 15 * time.Second
	// HeaderClientOrigin tags every request with the client instance id so
	// the server can stamp change events with it.
	HeaderClientOrigin = "X-Client-Origin"

	defaultRetries   = 2
	retryBackoff     = 250 * time.Millisecond
	maxRetryBackoff  = 2 * time.Second
	maxErrorBodySize = 64 << 10
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Origin     string
	MaxRetries int
	HTTPClient *http.Client
}

// Client talks to the cable order service. Reads are retried on transient
// failures; writes are sent once. Timeout bounds each call as a whole,
// retries and backoff included.
type Client struct {
	log     *logger.Logger
	baseURL string
	origin  string
	retries int
	timeout time.Duration
	http    *http.Client
}

func New(log *logger.Logger, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	origin := strings.TrimSpace(cfg.Origin)
	if origin == "" {
		origin = uuid.NewString()
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	} else if retries == 0 {
		retries = defaultRetries
	}
	return &Client{
		log:     log.With("component", "CableClient"),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		origin:  origin,
		retries: retries,
		timeout: timeout,
		http:    hc,
	}
}

func (c *Client) Origin() string  { return c.origin }
func (c *Client) BaseURL() string { return c.baseURL }

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	var out struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expires_in"`
		User      struct {
			Username string      `json:"username"`
			Role     domain.Role `json:"role"`
		} `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, nil, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	s := &Session{
		Token:    out.Token,
		Username: out.User.Username,
		Role:     out.User.Role,
	}
	if out.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	c.log.Info("Logged in", "username", s.Username, "role", s.Role)
	return s, nil
}

// do sends one JSON request and decodes the JSON answer into out.
func (c *Client) do(ctx context.Context, s *Session, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = b
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := c.send(ctx, s, method, path, payload)
		if err != nil {
			lastErr = fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
			if !httpx.IsRetryableError(err) || attempt == attempts-1 {
				return lastErr
			}
			if serr := httpx.Sleep(ctx, httpx.JitterSleep(retryBackoff)); serr != nil {
				return lastErr
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			defer resp.Body.Close()
			if out == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				return nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("%w: decode %s %s: %v", ErrTransport, method, path, err)
			}
			return nil
		}

		apiErr := decodeAPIError(resp)
		lastErr = apiErr
		if attempt == attempts-1 || !httpx.IsRetryableHTTPStatus(resp.StatusCode) {
			return apiErr
		}
		wait := httpx.RetryAfterDuration(resp, httpx.JitterSleep(retryBackoff), maxRetryBackoff)
		c.log.Debug("Retrying request", "method", method, "path", path, "status", resp.StatusCode, "wait", wait)
		if serr := httpx.Sleep(ctx, wait); serr != nil {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) send(ctx context.Context, s *Session, method, path string, payload []byte) (*http.Response, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderClientOrigin, c.origin)
	if tok := s.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return c.http.Do(req)
}

func decodeAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	apiErr := &APIError{Status: resp.StatusCode, Code: "http_error"}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Code != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
