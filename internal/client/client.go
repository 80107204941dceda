// Package client talks to the problem and evaluation services over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request identifier to the server, which logs
// it alongside every LLM call made on the request's behalf.
const RequestIDHeader = "X-Request-Id"

// APIError is returned when a service answers with a non-2xx status.
type APIError struct {
	StatusCode int
	// Message is the service's "error" field, or a status-derived message
	// when the body carried none.
	Message string
}

func (e *APIError) Error() string { return e.Message }

// StatusMessage is the message used when a failed response has no usable
// error body.
func StatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// Client is an HTTP client for the code coach services.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Zero disables it. The timeout
// applies to a copy, so a shared client passed to WithHTTPClient is left
// untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// New creates a client for the services rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root URL the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// GenerateProblem asks the problem service for a problem at the given level
// and returns the raw tagged problem text.
func (c *Client) GenerateProblem(ctx context.Context, level int) (string, error) {
	var out GenerateResponse
	if err := c.post(ctx, "/generate-problem", GenerateRequest{Level: level}, &out); err != nil {
		return "", err
	}
	if out.ProblemText == nil {
		return "", errors.New("generate response is missing \"problem_text\"")
	}
	return *out.ProblemText, nil
}

// EvaluateSolution sends the problem and the learner's solution to the
// evaluation service.
func (c *Client) EvaluateSolution(ctx context.Context, problem, solution string) (*Evaluation, error) {
	var out evaluationWire
	if err := c.post(ctx, "/evaluate-solution", EvaluateRequest{Problem: problem, Solution: solution}, &out); err != nil {
		return nil, err
	}
	return out.evaluation()
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: StatusMessage(resp.StatusCode)}
	}
	return nil
}

// post sends in as JSON to path and decodes a 2xx body into out.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return &APIError{StatusCode: status, Message: er.Error}
	}
	return &APIError{StatusCode: status, Message: StatusMessage(status)}
}
