package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/metrics"
)

const (
	errorBodyReadLimit int64 = 4096
)

var errBaseURLRequired = errors.New("upstream base URL is required")

// TokenSource supplies the bearer token for the current session, empty when
// the session is anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func(ctx context.Context) string

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) string { return f(ctx) }

// Client is the typed wrapper over the external restaurant API. Every call
// decodes into an explicit schema and validates it before returning; a 401
// surfaces as a typed unauthorized error and nothing more, session teardown
// is the observer's decision.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	validate   *validator.Validate
	recorder   *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource installs the per-request bearer token lookup.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		if source != nil {
			c.tokens = source
		}
	}
}

// WithMetrics installs the request recorder.
func WithMetrics(recorder *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// NewClient builds the restaurant API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// do executes one upstream request and decodes the response into out when out
// is non-nil. No retries: a failed call surfaces immediately.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeUpstream, "restaurant API client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("marshal %s request", operation))
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", operation))
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.Token(ctx)); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.recorder.IncFailure(operation)
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("execute %s request", operation))
	}
	defer func() { _ = resp.Body.Close() }()
	c.recorder.ObserveRequest(operation, resp.StatusCode, time.Since(started))

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(operation, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("decode %s response", operation))
	}
	if err := c.validateResponse(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("malformed %s response", operation))
	}
	return nil
}

// statusError maps upstream HTTP failures onto the gateway error taxonomy.
func (c *Client) statusError(operation string, resp *http.Response) error {
	detail := upstreamDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "restaurant API rejected credentials")
	case http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeForbidden, fallback(detail, "restaurant API denied access"))
	case http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, fallback(detail, operation+" target not found"))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.New(pkgerrors.CodeValidation, fallback(detail, operation+" rejected by restaurant API"))
	}
	return pkgerrors.New(pkgerrors.CodeUpstream,
		fmt.Sprintf("%s failed with status %d: %s", operation, resp.StatusCode, fallback(detail, "no detail")))
}

// upstreamDetail extracts the restaurant API's error detail, tolerating both
// {"detail": "..."} and structured validation payloads.
func upstreamDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, errorBodyReadLimit))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var message string
	if err := json.Unmarshal(envelope.Detail, &message); err == nil {
		return strings.TrimSpace(message)
	}
	return strings.TrimSpace(string(envelope.Detail))
}

func fallback(value, alt string) string {
	if value == "" {
		return alt
	}
	return value
}

// validateResponse walks the decoded payload and applies struct validation.
// Slices are validated element-wise so list endpoints get the same checks.
func (c *Client) validateResponse(out any) error {
	value := reflect.ValueOf(out)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		return c.validate.Struct(value.Interface())
	case reflect.Slice:
		for i := 0; i < value.Len(); i++ {
			elem := value.Index(i)
			if elem.Kind() == reflect.Struct {
				if err := c.validate.Struct(elem.Interface()); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
			}
		}
	}
	return nil
}
