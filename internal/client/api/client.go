// Package api is a typed client for the gophauth HTTP API. It keeps the
// current token pair in memory and transparently refreshes an expired
// access token once before giving up.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

const (
	defaultRetries   = 2
	defaultRetryBase = 200 * time.Millisecond
)

type Client struct {
	baseURL string
	http    *http.Client

	retries   uint64
	retryBase time.Duration

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	userName     string
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets how many extra attempts an idempotent call gets when the
// server cannot be reached, and the initial backoff between them.
func WithRetry(retries uint64, base time.Duration) Option {
	return func(c *Client) {
		c.retries = retries
		c.retryBase = base
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		retries:   defaultRetries,
		retryBase: defaultRetryBase,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageBody struct {
	Message string `json:"message"`
}

type loginBody struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshBody struct {
	AccessToken string `json:"access_token"`
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, userName string, password []byte) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/register", "", credentials{Username: userName, Password: string(password)}, &out)
	return out.Message, err
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, userName string, password []byte) error {
	var out loginBody
	if err := c.do(ctx, http.MethodPost, "/login", "", credentials{Username: userName, Password: string(password)}, &out); err != nil {
		return err
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return fmt.Errorf("%w: login response without tokens", ErrUnexpected)
	}

	c.mu.Lock()
	c.accessToken, c.refreshToken, c.userName = out.AccessToken, out.RefreshToken, userName
	c.mu.Unlock()
	return nil
}

// Refresh trades the stored refresh token for a new access token. A
// rejected refresh token clears the session.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	refresh := c.refreshToken
	c.mu.RUnlock()
	if refresh == "" {
		return ErrUnauthorized
	}

	var out refreshBody
	err := c.withRetry(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/refresh", refresh, nil, &out)
	})
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.Logout()
		}
		return err
	}

	c.mu.Lock()
	c.accessToken = out.AccessToken
	c.mu.Unlock()
	return nil
}

// Protected fetches the greeting behind the access-token guard. On a 401
// it refreshes once and retries. A rejected refresh clears the session; an
// unreachable server leaves it in place.
func (c *Client) Protected(ctx context.Context) (string, error) {
	msg, err := c.protectedOnce(ctx)
	if !errors.Is(err, ErrUnauthorized) {
		return msg, err
	}

	if err := c.Refresh(ctx); err != nil {
		return "", err
	}
	return c.protectedOnce(ctx)
}

func (c *Client) protectedOnce(ctx context.Context) (string, error) {
	c.mu.RLock()
	access := c.accessToken
	c.mu.RUnlock()
	if access == "" {
		return "", ErrUnauthorized
	}

	var out messageBody
	err := c.withRetry(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, "/protected", access, nil, &out)
	})
	return out.Message, err
}

// Logout forgets the stored tokens.
func (c *Client) Logout() {
	c.mu.Lock()
	c.accessToken, c.refreshToken, c.userName = "", "", ""
	c.mu.Unlock()
}

func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken != ""
}

func (c *Client) UserName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userName
}

// withRetry repeats fn while the server is unreachable.
func (c *Client) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(c.retries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpected, err)
		}
		return nil
	}

	var m messageBody
	_ = json.Unmarshal(data, &m)
	return &StatusError{Status: resp.StatusCode, Message: m.Message, kind: kindOf(resp.StatusCode)}
}

func kindOf(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrUnexpected
	}
}
