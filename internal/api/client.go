package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the remote drive API. Authentication is cookie based; the
// caller supplies the jar so the session can be persisted across runs.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

func New(baseURL string, jar http.CookieJar, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &Client{
		base: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() *url.URL { return c.base }

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login establishes a session for username. The server answers with a session
// cookie which lands in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/auth/login", credentials{Username: username, Password: password}, nil)
}

// Register creates an account. The server does not log the new account in;
// callers follow up with Login.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/auth/register", credentials{Username: username, Password: password}, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do executes the request, classifies non-2xx responses and decodes the body
// into out when it is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer closeWithLog(resp.Body, "response body", c.logger)

	c.logger.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// classify turns a failed response into an *Error, keeping the server's
// message when the body carries one.
func classify(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}

func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
