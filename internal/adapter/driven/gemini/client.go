// Package gemini implements the TextGenerator port using the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/ericfisherdev/postwriter/internal/domain/port/driven"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("gemini returned an empty response")

// Compile-time interface satisfaction check.
var _ driven.TextGenerator = (*Client)(nil)

// Client implements driven.TextGenerator with a single non-streaming
// GenerateContent call per prompt.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini API client for the given key and model. An empty
// model falls back to DefaultModel and an empty baseURL uses the SDK default.
func NewClient(ctx context.Context, apiKey, model, baseURL string) (*Client, error) {
	return NewClientWithHTTPClient(ctx, http.DefaultClient, apiKey, model, baseURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client. Tests use
// it together with an httptest server URL as baseURL.
func NewClientWithHTTPClient(ctx context.Context, httpClient *http.Client, apiKey, model, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{genai: client, model: model}, nil
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt as a single user turn and returns the response text.
// No retries are attempted; the request is bounded only by ctx.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generating content with %s: %w", c.model, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
