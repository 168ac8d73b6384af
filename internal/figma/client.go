// Package figma implements the client fetching whole design files from the Figma REST API.
package figma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/designsync/figma-fetch/internal/constants"
	"github.com/designsync/figma-fetch/internal/fileutils"
)

var (
	// ErrMissingToken is returned when no access token was provided.
	ErrMissingToken = errors.New("figma access token not supplied")
	// ErrRequestFailed is returned when the file could not be fetched, either due to a network error or a non-2xx status code.
	ErrRequestFailed = errors.New("figma API call failed")
	// ErrBadPayload is returned when a successful response does not hold a JSON object.
	ErrBadPayload = errors.New("figma API returned an invalid payload")
	// ErrInvalidFileKey is returned when a file key is empty or could escape its path segment.
	ErrInvalidFileKey = errors.New("invalid file key")
)

// Payload is the raw JSON document describing a design file.
// It is kept opaque: members are neither interpreted nor reordered.
type Payload = json.RawMessage

// StatusError is returned when the server answers with a non-2xx status code.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %s", ErrRequestFailed, e.Status)
	}
	return fmt.Sprintf("%v: %s\n%s", ErrRequestFailed, e.Status, e.Body)
}

// Is makes StatusError match ErrRequestFailed.
func (e *StatusError) Is(target error) bool {
	return target == ErrRequestFailed
}

// Client fetches design files on behalf of a single token.
type Client struct {
	token   string
	baseURL string
	client  *http.Client

	log *slog.Logger
}

type options struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// Options represents an optional function to override Client default values.
type Options func(*options)

// WithBaseURL sets the endpoint file keys are appended to.
func WithBaseURL(u string) Options {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithTimeout sets the time limit for the whole request, body included.
func WithTimeout(d time.Duration) Options {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client. Its timeout is overridden by the configured one.
func WithHTTPClient(c *http.Client) Options {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(l *slog.Logger) Options {
	return func(o *options) {
		o.log = l
	}
}

// New returns a new Client authenticating with token.
func New(token string, args ...Options) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	opts := options{
		baseURL: constants.DefaultBaseURL,
		timeout: constants.DefaultTimeout,
		log:     slog.Default(),
	}
	for _, opt := range args {
		opt(&opts)
	}

	if opts.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", opts.timeout)
	}
	if _, err := url.Parse(opts.baseURL); err != nil {
		return nil, fmt.Errorf("failed to parse base URL %s: %v", opts.baseURL, err)
	}

	hc := &http.Client{}
	if opts.httpClient != nil {
		c := *opts.httpClient
		hc = &c
	}
	hc.Timeout = opts.timeout

	opts.log.Debug("Created Figma client", "baseURL", opts.baseURL, "timeout", opts.timeout)
	return &Client{
		token:   token,
		baseURL: opts.baseURL,
		client:  hc,
		log:     opts.log,
	}, nil
}

// File fetches the JSON document of the file identified by fileKey with a single GET request.
func (c Client) File(ctx context.Context, fileKey string) (Payload, error) {
	if err := ValidateFileKey(fileKey); err != nil {
		return nil, err
	}

	u, err := c.fileURL(fileKey)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set(constants.TokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("Fetching file", "url", u)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			c.log.Warn("Failed to read error response body", "error", err)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrRequestFailed, err)
	}

	p, err := fileutils.ParseJSONObject(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	c.log.Debug("Fetched file", "bytes", len(p), "status", resp.StatusCode)

	return p, nil
}

// fileURL appends the path-escaped fileKey to the base URL. A "%" in fileKey is sent as "%25".
func (c Client) fileURL(fileKey string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL %s: %v", c.baseURL, err)
	}
	u.RawPath = strings.TrimSuffix(u.EscapedPath(), "/") + "/" + url.PathEscape(fileKey)
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + fileKey
	return u.String(), nil
}

// ValidateFileKey checks that key can be used both as a URL path segment and as part of a file name.
func ValidateFileKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: cannot be an empty string", ErrInvalidFileKey)
	case key == "." || key == "..":
		return fmt.Errorf("%w: %q is a relative path element", ErrInvalidFileKey, key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidFileKey, key)
	}
	return nil
}
