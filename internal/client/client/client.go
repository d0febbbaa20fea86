package client

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

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/netx"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

const maxResponseSize = 10 << 20

// SessionSource hands out the current token together with the session
// generation it belongs to, and clears that session on request.
type SessionSource interface {
	Credentials() (token string, generation uint64)
	// Invalidate clears the session only if it is still at generation and
	// reports whether this call cleared it.
	Invalidate(ctx context.Context, generation uint64) (bool, error)
}

// Navigator switches the user interface to the login view.
type Navigator interface {
	RedirectToLogin(ctx context.Context)
}

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Multipart *Multipart

	// Public requests never carry a token and never invalidate the session.
	Public bool
	// Retry enables the connectivity retry policy for this request.
	Retry bool
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RetryAttempts is the number of retries after the first call for
	// requests marked Retry.
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RateLimit      float64
	RateBurst      int

	Session   SessionSource
	Navigator Navigator
	Logger    logging.Logger

	// HTTPClient replaces the default *http.Client.
	HTTPClient *http.Client
	// Backoff replaces the exponential backoff built from the retry settings.
	Backoff func() retry.Backoff
}

// Client is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	session   SessionSource
	navigator Navigator
	logger    logging.Logger
	limiter   *rate.Limiter
	backoff   func() retry.Backoff
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := max(opts.RateBurst, 1)

	backoff := opts.Backoff
	if backoff == nil {
		retries := opts.RetryAttempts
		if retries < 1 {
			retries = 3
		}
		base := opts.RetryBaseDelay
		if base <= 0 {
			base = 500 * time.Millisecond
		}
		backoff = func() retry.Backoff {
			return retry.WithMaxRetries(uint64(retries), retry.NewExponential(base))
		}
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		session:   opts.Session,
		navigator: opts.Navigator,
		logger:    logger,
		limiter:   rate.NewLimiter(limit, burst),
		backoff:   backoff,
	}, nil
}

// BaseURL returns the API root, e.g. http://localhost:8080/api.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Origin returns scheme and host of the API, e.g. http://localhost:8080.
func (c *Client) Origin() string {
	return c.baseURL.Scheme + "://" + c.baseURL.Host
}

// Do sends req and decodes a successful JSON response into out, which may be nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if !req.Retry {
		return c.do(ctx, req, out)
	}

	attempt := 0
	return retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		attempt++
		err := c.do(ctx, req, out)
		if err != nil && errors.Is(err, ErrConnectivity) {
			c.logger.Warn(ctx, "retrying request", "method", req.Method, "path", req.Path, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) do(ctx context.Context, req Request, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var (
		token      string
		generation uint64
	)
	if !req.Public && c.session != nil {
		token, generation = c.session.Credentials()
	}

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return &APIError{Kind: ErrValidation, Method: req.Method, Path: req.Path, Message: err.Error(), Err: err}
	}
	if token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	log := c.logger.With("request_id", requestID, "method", req.Method, "path", req.Path)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn(ctx, "request failed", "error", err, "duration", time.Since(start))
		return &APIError{Kind: ErrConnectivity, Method: req.Method, Path: req.Path, Message: netx.Describe(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &APIError{Kind: ErrConnectivity, Status: resp.StatusCode, Method: req.Method, Path: req.Path, Err: err}
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Method:  req.Method,
			Path:    req.Path,
			Message: extractMessage(body),
		}
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.handleUnauthorized(ctx, generation)
		}
		log.Info(ctx, "request rejected", "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Kind: ErrServer, Status: resp.StatusCode, Method: req.Method, Path: req.Path, Message: "malformed response body", Err: err}
	}
	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Multipart != nil:
		ct, data, err := req.Multipart.encode()
		if err != nil {
			return nil, fmt.Errorf("encode multipart body: %w", err)
		}
		body, contentType = bytes.NewReader(data), ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

func (c *Client) handleUnauthorized(ctx context.Context, generation uint64) {
	if c.session == nil {
		return
	}
	cleared, err := c.session.Invalidate(ctx, generation)
	if err != nil {
		c.logger.Error(ctx, "failed to clear rejected session", "error", err)
	}
	if cleared {
		c.logger.Info(ctx, "session rejected by server, redirecting to login")
		if c.navigator != nil {
			c.navigator.RedirectToLogin(ctx)
		}
	}
}
