// Package llm implements the auto-categorization collaborator on top
// of an OpenAI-compatible chat API. Categorization is always
// best-effort for callers: the import pipeline swallows every failure
// this package can produce.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/service"
)

// Config holds the categorizer settings.
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Temperature       float32
	MaxTokens         int
	RequestsPerMinute int
}

// Categorizer wraps a chat client with rate limiting and retries. It
// implements service.Categorizer.
type Categorizer struct {
	client  *openAIClient
	limiter *rateLimiter
	retry   common.RetryOptions
}

// NewCategorizer creates a categorizer from config.
func NewCategorizer(cfg Config) (*Categorizer, error) {
	client, err := newOpenAIClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Categorizer{
		client:  client,
		limiter: newRateLimiter(cfg.RequestsPerMinute),
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
		},
	}, nil
}

// SuggestCategory asks the model to pick one of the offered categories
// for a transaction note. A nil suggestion means the model declined.
func (c *Categorizer) SuggestCategory(ctx context.Context, note string, amountCents int64, options []service.CategoryOption) (*service.CategorySuggestion, error) {
	if len(options) == 0 {
		return nil, common.ErrNoCategories
	}

	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	var suggestion *service.CategorySuggestion
	err := common.WithRetry(ctx, func() error {
		var callErr error
		suggestion, callErr = c.client.suggestCategory(ctx, note, amountCents, options)
		return callErr
	}, c.retry)
	if err != nil {
		return nil, fmt.Errorf("categorization request failed: %w", err)
	}

	return suggestion, nil
}

// Close releases the rate limiter's refill goroutine.
func (c *Categorizer) Close() {
	c.limiter.Close()
}
