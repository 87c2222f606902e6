package draft

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/dgallion1/sumforge/internal/dataset"
)

// Config holds settings for the draft summary client.
type Config struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
	BaseURL    string       // Optional (tests)
	HTTPClient *http.Client // Optional (tests)
}

// Client generates draft summaries for chunks using the OpenAI API.
// Drafts are a starting point for the human author, not final
// summaries; the merge phase treats them like any other summary line.
type Client struct {
	client     openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration

	Stats *Stats
}

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	// Retries are handled here, not in the SDK, so the retry budget
	// and backoff stay configurable in one place.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		Stats:      NewStats(time.Hour),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Summarize produces one draft summary for a chunk, using the same
// system prompt and user wrapper as the training records. The result
// is flattened to a single line.
func (c *Client) Summarize(ctx context.Context, chunkText string) (string, error) {
	var out string
	err := retry.Do(
		func() error {
			start := time.Now()
			resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(c.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(dataset.SystemPrompt),
					openai.UserMessage(dataset.UserContent(chunkText)),
				},
			})
			c.Stats.Record(time.Since(start).Milliseconds())
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("empty completion response")
			}
			out = flatten(resp.Choices[0].Message.Content)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		return "", fmt.Errorf("draft summary: %w", err)
	}
	return out, nil
}

// flatten collapses a draft onto one line; the summaries file format
// is strictly one summary per line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
