// Package llm talks to an OpenAI-compatible chat completion endpoint.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"profile-roast/internal/metrics"
)

var (
	// ErrAPI is returned for non-2xx responses.
	ErrAPI = errors.New("completion request failed")
	// ErrEmptyCompletion is returned when the response carries no choice.
	ErrEmptyCompletion = errors.New("completion returned no choices")
)

// maxErrorBody bounds how much of an error response is kept in the error.
const maxErrorBody = 512

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	Title      string // sent as X-Title, used by OpenRouter for attribution
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is a minimal chat completion client.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	title   string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds a Client.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 120 * time.Second}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		model:   opts.Model,
		title:   opts.Title,
		http:    hc,
		log:     log.Named("llm"),
	}
}

// Complete sends messages and returns the content of the first choice.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	start := time.Now()
	content, err := c.complete(ctx, messages)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionFailures.Inc()
		return "", err
	}
	c.log.Debug("completion received",
		zap.String("model", c.model),
		zap.Duration("took", time.Since(start)),
		zap.Int("chars", len(content)))
	return content, nil
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	payload, err := sonic.Marshal(completionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAPI, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrAPI, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrAPI, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out completionResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrAPI, err)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}
