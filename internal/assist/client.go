// Package assist holds the OpenAI-backed collaborators: documentation
// analysis, container-script generation and the interactive chat loop.
package assist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/autocontain/autocontain/internal/config"
)

// Client wraps the OpenAI API for the assistant features.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a Client from configuration. The API key is required.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	c := openai.NewClient(option.WithAPIKey(cfg.OpenAIKey))
	return &Client{client: &c, model: cfg.OpenAIModel}, nil
}

// Complete sends one system+user exchange and returns the assistant text.
// Rate-limit errors are retried with exponential backoff; other API errors
// fail immediately.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var content string

	operation := func() error {
		resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
			Model:       c.model,
			Temperature: openai.Float(0.5),
		})
		if err != nil {
			if isRateLimitError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("empty completion response"))
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	return content, nil
}

// isRateLimitError checks whether the error is an HTTP 429.
func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
