// internal/api/client.go
// Package api is the REST client for the platform endpoints the formula editor consumes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	pathCheckSyntax = "/settings/check-formula-syntax"
	pathSuggestions = "/settings/formula-suggestions"
	pathModules     = "/form/group"
	pathForms       = "/form/get"
	pathEvaluate    = "/settings/evaluate"

	defaultTimeout = 10 * time.Second
)

// Backend is everything the formula engine needs from the platform
type Backend interface {
	CheckSyntax(ctx context.Context, formula string, data map[string]any) (*SyntaxResult, error)
	Suggestions(ctx context.Context, query string, limit int) ([]Suggestion, error)
	Modules(ctx context.Context, offset, limit int) ([]Module, error)
	Forms(ctx context.Context, moduleID string, offset, limit int) ([]Form, error)
	Evaluate(ctx context.Context, formula string, data map[string]any) (any, error)
}

// Client implements Backend over HTTP with a bearer token
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckSyntax asks the backend whether formula is valid for the sample data
func (c *Client) CheckSyntax(ctx context.Context, formula string, data map[string]any) (*SyntaxResult, error) {
	var res SyntaxResult
	if err := c.do(ctx, http.MethodPost, pathCheckSyntax, nil, syntaxRequest{Formula: formula, Data: nonNil(data)}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Suggestions returns ranked snippet entries for a partial token
func (c *Client) Suggestions(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	var res suggestionResponse
	req := suggestionRequest{Query: query, Options: suggestionOptions{Limit: limit}}
	if err := c.do(ctx, http.MethodPost, pathSuggestions, nil, req, &res); err != nil {
		return nil, err
	}
	return res.Suggestions, nil
}

// Modules lists the platform modules
func (c *Client) Modules(ctx context.Context, offset, limit int) ([]Module, error) {
	var res moduleResponse
	if err := c.do(ctx, http.MethodGet, pathModules, page(offset, limit), nil, &res); err != nil {
		return nil, err
	}
	return res.FormData, nil
}

// Forms lists the saved form definitions of a module
func (c *Client) Forms(ctx context.Context, moduleID string, offset, limit int) ([]Form, error) {
	q := page(offset, limit)
	q.Set("formTitle", moduleID)

	var res formResponse
	if err := c.do(ctx, http.MethodGet, pathForms, q, nil, &res); err != nil {
		return nil, err
	}
	return res.FormData, nil
}

// Evaluate computes formula against data remotely and returns the decoded JSON value
func (c *Client) Evaluate(ctx context.Context, formula string, data map[string]any) (any, error) {
	var res any
	if err := c.do(ctx, http.MethodPost, pathEvaluate, nil, syntaxRequest{Formula: formula, Data: nonNil(data)}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return WrapTransportError(method+" "+path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return WrapTransportError(method+" "+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return WrapTransportError(method+" "+path, err)
	}
	c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, ErrorMessage: errorMessage(resp.StatusCode, data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// errorMessage pulls a human message out of an error body, falling back to the status text
func errorMessage(status int, data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		var s string
		if len(body.Error) > 0 && json.Unmarshal(body.Error, &s) == nil && s != "" {
			return s
		}
	}
	return http.StatusText(status)
}

func page(offset, limit int) url.Values {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

func nonNil(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}
