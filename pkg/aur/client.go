package aur

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var errUnsupportedScheme = errors.New("base URL must use http or https")

// DefaultBaseURL is the production AUR RPC endpoint.
const DefaultBaseURL = "https://aur.archlinux.org/rpc.php"

const (
	defaultUserAgent = "aurq/1.0 (https://github.com/mkessler/aurq)"
	httpTimeout      = 10 * time.Second
)

// Config holds the immutable configuration for a Client.
// The zero value is usable: every field has a default.
type Config struct {
	// BaseURL is the RPC endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient performs the requests. Defaults to a client with a 10s
	// timeout. Redirects are followed by whatever policy this client uses.
	HTTPClient *http.Client

	// UserAgent is sent with every request. Defaults to an aurq identifier.
	UserAgent string

	// Logger receives debug-level request logs. Defaults to a discard logger.
	Logger *log.Logger
}

// Client talks to the AUR RPC service. It holds no per-call mutable state,
// so it is safe for concurrent use to the same extent as its http.Client.
type Client struct {
	http      *http.Client
	base      string
	userAgent string
	logger    *log.Logger
}

// NewClient creates a Client from cfg, filling in defaults for zero fields.
// A malformed base URL is a configuration-time failure: it is rejected here
// so that individual calls never fail on URL construction.
func NewClient(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &url.Error{Op: "parse", URL: base, Err: errUnsupportedScheme}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: httpTimeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		http:      httpClient,
		base:      base,
		userAgent: userAgent,
		logger:    logger,
	}, nil
}

// Search queries packages whose name or description matches pattern.
// Results come back in server-supplied order.
func (c *Client) Search(ctx context.Context, pattern string) ([]Package, error) {
	results, err := c.call(ctx, rpcURL(c.base, opSearch, pattern))
	if err != nil {
		return nil, err
	}
	return packageList(results)
}

// MSearch queries packages maintained by the given user.
func (c *Client) MSearch(ctx context.Context, maintainer string) ([]Package, error) {
	results, err := c.call(ctx, rpcURL(c.base, opMSearch, maintainer))
	if err != nil {
		return nil, err
	}
	return packageList(results)
}

// Info looks up a single package by exact name. A nil Package with a nil
// error means the package does not exist; the service signals this with an
// empty results array.
func (c *Client) Info(ctx context.Context, name string) (*Package, error) {
	results, err := c.call(ctx, rpcURL(c.base, opInfo, name))
	if err != nil {
		return nil, err
	}
	if arr, ok := results.([]any); ok && len(arr) == 0 {
		return nil, nil
	}
	p, err := packageFromValue(results)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MultiInfo looks up several packages by exact name in one call. Names that
// do not exist are simply absent from the result; order follows the server.
func (c *Client) MultiInfo(ctx context.Context, names []string) ([]Package, error) {
	results, err := c.call(ctx, rpcMultiURL(c.base, opMultiInfo, names))
	if err != nil {
		return nil, err
	}
	return packageList(results)
}

// call performs one RPC round trip: GET the URL, translate transport
// failures at the boundary, and interpret the envelope.
func (c *Client) call(ctx context.Context, rawURL string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, ioError(err)
	}
	reqID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	c.logger.Debug("rpc request", "url", rawURL, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	results, err := interpret(resp)
	if err != nil {
		c.logger.Debug("rpc failed", "request_id", reqID, "err", err)
		return nil, err
	}
	return results, nil
}
