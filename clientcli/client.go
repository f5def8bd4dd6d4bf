package clientcli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sagarc03/challengedb"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs challenge operations against a challengedb server.
type Client struct {
	config Config
	http   *resty.Client
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sends requests through client. The client's timeout is
// overwritten by the one New settles on.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the request timeout. It applies whatever the position of
// WithHTTPClient in the option list.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// New creates a Client for cfg. Empty endpoint and base path fall back to
// DefaultEndpoint and DefaultBasePath; the secret is required since every
// operation is signed.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.normalized()
	if cfg.Secret == "" {
		return nil, ErrSecretRequired
	}

	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	rc := resty.New()
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	}
	rc.SetBaseURL(cfg.Endpoint).SetTimeout(o.timeout)

	return &Client{config: cfg, http: rc}, nil
}

// Digest returns the digest the client sends for op.
func (c *Client) Digest(op challengedb.Operation) string {
	return challengedb.ComputeDigest(c.config.Secret, challengedb.CanonicalString(c.config.BasePath, op))
}

// Create stores a new challenge and returns the server's result.
func (c *Client) Create(ctx context.Context, in challengedb.ChallengeInput) (Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(writePayload{Challenge: in, Digest: c.Digest(challengedb.OpCreate)}).
		Post(c.config.BasePath + "/")
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	return decodeResult(resp, "create")
}

// Replace overwrites the challenge with the given id.
func (c *Client) Replace(ctx context.Context, id int64, in challengedb.ChallengeInput) (Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(writePayload{Challenge: in, Digest: c.Digest(challengedb.OpReplace)}).
		Put(c.itemPath(id))
	if err != nil {
		return Result{}, fmt.Errorf("replace request: %w", err)
	}
	return decodeResult(resp, "replace")
}

// Delete removes the challenge with the given id.
func (c *Client) Delete(ctx context.Context, id int64) (Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(digestPayload{Digest: c.Digest(challengedb.OpDelete)}).
		Delete(c.itemPath(id))
	if err != nil {
		return Result{}, fmt.Errorf("delete request: %w", err)
	}
	return decodeResult(resp, "delete")
}

// Get fetches the challenge with the given id.
func (c *Client) Get(ctx context.Context, id int64) (Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("digest", c.Digest(challengedb.OpRead)).
		Get(c.itemPath(id))
	if err != nil {
		return Result{}, fmt.Errorf("get request: %w", err)
	}
	return decodeResult(resp, "get")
}

func (c *Client) itemPath(id int64) string {
	return c.config.BasePath + "/" + strconv.FormatInt(id, 10)
}

func decodeResult(resp *resty.Response, op string) (Result, error) {
	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return Result{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	default:
		body := strings.TrimSpace(string(resp.Body()))
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return Result{}, fmt.Errorf("%s: %w: http %d: %s", op, ErrUnexpectedStatus, resp.StatusCode(), body)
	}

	var r Result
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return Result{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return r, nil
}
