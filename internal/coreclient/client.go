// Package coreclient is a JSON client for the chesscore HTTP surface.
package coreclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/park285/Cheese-chesscore/pkg/chessdto"
)

// HeaderProvider allows injecting per-request headers
type HeaderProvider func() map[string]string

type Client struct {
	baseURL string
	http    *fasthttp.Client
	headers HeaderProvider
	dial    fasthttp.DialFunc

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func WithHeaderProvider(h HeaderProvider) Option {
	return func(c *Client) { c.headers = h }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

// WithDial overrides how connections are opened, e.g. for in-memory listeners.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *Client) {
		c.http.Dial = dial
		c.dial = dial
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 64},
		defaultTimeout: 10 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Health(ctx context.Context) (*chessdto.HealthResponse, error) {
	var out chessdto.HealthResponse
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/healthz", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Moves(ctx context.Context, req chessdto.PositionRequest) (*chessdto.MovesResponse, error) {
	var out chessdto.MovesResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/v1/moves", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Attempt(ctx context.Context, req chessdto.AttemptRequest) (*chessdto.AttemptResponse, error) {
	var out chessdto.AttemptResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/v1/attempt", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Analyze(ctx context.Context, req chessdto.PositionRequest) (*chessdto.AnalysisResponse, error) {
	var out chessdto.AnalysisResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/v1/analysis", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateGame is not retried: a retry after a lost response would open a second session.
func (c *Client) CreateGame(ctx context.Context, fen string) (*chessdto.GameState, error) {
	var out chessdto.GameState
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/v1/games", chessdto.CreateGameRequest{FEN: fen}, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Game(ctx context.Context, id string) (*chessdto.GameState, error) {
	var out chessdto.GameState
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/v1/games/"+url.PathEscape(id), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GameMoves(ctx context.Context, id string) (*chessdto.MovesResponse, error) {
	var out chessdto.MovesResponse
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/v1/games/"+url.PathEscape(id)+"/moves", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Play submits a move. Pass ExpectedPly to make the call safe to repeat.
func (c *Client) Play(ctx context.Context, id string, req chessdto.PlayRequest) (*chessdto.PlayResponse, error) {
	var out chessdto.PlayResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/v1/games/"+url.PathEscape(id)+"/moves", req, &out, req.ExpectedPly != nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any, retry bool) error {
	target := c.baseURL + path
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(target)
	req.Header.SetContentType("application/json")

	if c.headers != nil {
		for k, v := range c.headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				req.Header.Set(k, v)
			}
		}
	}

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	attempts := 1
	if retry {
		attempts = c.retryMax
		if attempts <= 0 {
			attempts = 1
		}
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		deadline := c.computeDeadline(ctx)
		err := c.http.DoDeadline(req, resp, deadline)
		if err != nil {
			if attempt == attempts || !retry {
				return fmt.Errorf("request failed: %w", err)
			}
			lastErr = err
			if sleepErr := c.sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			err := decodeError(status, resp.Body())
			if attempt == attempts || !retry || !shouldRetryStatus(status) {
				return err
			}
			lastErr = err
			if sleepErr := c.sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		if out != nil {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return lastErr
}

// StatusError is returned for non-2xx responses. Domain carries the decoded
// error body when the server sent one.
type StatusError struct {
	Status int
	Domain chessdto.DomainError
	Body   string
}

func (e *StatusError) Error() string {
	if e.Domain.Code != "" {
		return fmt.Sprintf("chesscore error: status=%d code=%s: %s", e.Status, e.Domain.Code, e.Domain.Error())
	}
	return fmt.Sprintf("chesscore error: status=%d body=%s", e.Status, e.Body)
}

func decodeError(status int, body []byte) error {
	se := &StatusError{Status: status, Body: truncate(string(body), 512)}
	_ = json.Unmarshal(body, &se.Domain)
	return se
}

// IsCode reports whether err is a StatusError carrying the given domain code.
func IsCode(err error, code string) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Domain.Code == code
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		clientDL := time.Now().Add(c.defaultTimeout)
		if dl.Before(clientDL) {
			return dl
		}
		return clientDL
	}
	return time.Now().Add(c.defaultTimeout)
}

func (c *Client) sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		attempt = 6
	}
	base := 100 * time.Millisecond
	return time.Duration(1<<uint(attempt-1)) * base // 100ms, 200ms ...
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
