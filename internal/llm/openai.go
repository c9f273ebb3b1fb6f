package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/service"
)

const systemPrompt = `You are a personal-finance transaction categorizer. Given a transaction note and a list of the user's categories, pick the single best-fitting category. You MUST respond with ONLY a valid JSON object of the form {"category_id": "<id or null>", "reasoning": "<one sentence>"}. Use null for category_id when no category fits. Never invent category ids.`

// openAIClient talks to an OpenAI-compatible chat completions API.
type openAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// newOpenAIClient creates a new chat client.
func newOpenAIClient(cfg Config) (*openAIClient, error) {
	if cfg.APIKey == "" {
		return nil, common.NewUserError("OpenAI API key is not configured", common.ErrMissingConfig)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 150
	}

	return &openAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (c *openAIClient) suggestCategory(ctx context.Context, note string, amountCents int64, options []service.CategoryOption) (*service.CategorySuggestion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(note, amountCents, options)},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %v", common.ErrRateLimit, err)
		}
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	return parseSuggestion(resp.Choices[0].Message.Content, options)
}

// buildPrompt renders the transaction and the category menu.
func buildPrompt(note string, amountCents int64, options []service.CategoryOption) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Transaction note: %q\n", note)
	fmt.Fprintf(&sb, "Amount: %d cents\n\n", amountCents)
	sb.WriteString("Categories:\n")
	for _, opt := range options {
		if opt.Icon != "" {
			fmt.Fprintf(&sb, "- %s: %s %s\n", opt.ID, opt.Icon, opt.Name)
		} else {
			fmt.Fprintf(&sb, "- %s: %s\n", opt.ID, opt.Name)
		}
	}
	return sb.String()
}

// parseSuggestion extracts the model's pick, rejecting ids that were
// not offered.
func parseSuggestion(content string, options []service.CategoryOption) (*service.CategorySuggestion, error) {
	// Models occasionally wrap the JSON in a markdown fence.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed struct {
		CategoryID *string `json:"category_id"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse categorization response: %w", err)
	}

	if parsed.CategoryID == nil || *parsed.CategoryID == "" || *parsed.CategoryID == "null" {
		return nil, nil
	}

	for _, opt := range options {
		if opt.ID == *parsed.CategoryID {
			return &service.CategorySuggestion{
				CategoryID: opt.ID,
				Reasoning:  parsed.Reasoning,
			}, nil
		}
	}
	return nil, fmt.Errorf("model suggested unknown category %q", *parsed.CategoryID)
}
