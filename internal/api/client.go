// Package api implements the analysis client: a single best-effort JSON POST
// to a configured endpoint, or an offline mock response when no real endpoint
// is set.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/glassai/internal/errors"
	"github.com/diogo/glassai/internal/models"
)

// Analyzer is the interface the orchestrator depends on.
type Analyzer interface {
	SetEndpoint(endpoint string)
	Analyze(req models.AnalysisRequest) (*models.AnalysisResponse, error)
}

// httpDoer is the slice of the HTTP client the analysis path needs.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends analysis requests. With no endpoint configured (or the
// placeholder endpoint), Analyze answers from the mock path without touching
// the network.
type Client struct {
	mu         sync.RWMutex
	endpoint   string
	httpClient httpDoer
	mockDelay  func() time.Duration
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithEndpoint sets the initial target endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(client httpDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithMockDelay fixes the mock-path delay instead of the default randomized
// 1.5-2.5s latency simulation.
func WithMockDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.mockDelay = func() time.Duration { return d }
	}
}

// NewClient creates an analysis client. The request timeout is enforced by
// the HTTP client itself; a call that exceeds it is aborted and surfaces as a
// timeout error.
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		endpoint:  models.DefaultEndpoint,
		mockDelay: defaultMockDelay,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(models.RequestTimeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// SetEndpoint replaces the target endpoint for subsequent calls.
func (c *Client) SetEndpoint(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = endpoint
}

// Endpoint returns the current target endpoint.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// Analyze sends the request to the configured endpoint, or synthesizes a mock
// response when none is configured. Requests with neither text nor image are
// not rejected here; the mock path answers them with a fixed prompt and the
// live path posts them as-is.
func (c *Client) Analyze(req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	endpoint := c.Endpoint()
	if endpoint == "" || endpoint == models.DefaultEndpoint {
		return c.mockResponse(req), nil
	}
	return c.analyzeLive(endpoint, req)
}

// analyzeLive issues a single JSON POST. No retry.
func (c *Client) analyzeLive(endpoint string, req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if apierrors.IsTimeout(err) {
			return nil, apierrors.NewTimeoutError(endpoint)
		}
		return nil, apierrors.NewNetworkError("analyze", endpoint, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep a bounded snippet of the body for diagnostics
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("read response", endpoint, err)
	}

	return parseResponse(body)
}

// parseResponse returns the response body verbatim as the response shape.
// Beyond being valid JSON, no schema is enforced.
func parseResponse(body []byte) (*models.AnalysisResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: not valid JSON", apierrors.ErrInvalidResponse)
	}

	out := &models.AnalysisResponse{
		Text:       gjson.GetBytes(body, "text").String(),
		Confidence: gjson.GetBytes(body, "confidence").Float(),
	}
	if meta := gjson.GetBytes(body, "metadata"); meta.IsObject() {
		if m, ok := meta.Value().(map[string]any); ok {
			out.Metadata = m
		}
	}
	return out, nil
}

// defaultMockDelay simulates 1.5-2.5s of network latency.
func defaultMockDelay() time.Duration {
	return 1500*time.Millisecond + time.Duration(rand.Int63n(1000))*time.Millisecond
}
