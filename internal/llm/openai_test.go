package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/every-penny/internal/service"
)

var testOptions = []service.CategoryOption{
	{ID: "cat-coffee", Name: "Coffee", Icon: "☕"},
	{ID: "cat-transport", Name: "Transport"},
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantID      string
		wantDecline bool
		wantErr     bool
	}{
		{
			name:    "plain json",
			content: `{"category_id": "cat-coffee", "reasoning": "coffee shop"}`,
			wantID:  "cat-coffee",
		},
		{
			name:    "markdown fenced",
			content: "```json\n{\"category_id\": \"cat-transport\", \"reasoning\": \"ride share\"}\n```",
			wantID:  "cat-transport",
		},
		{
			name:    "bare fence",
			content: "```\n{\"category_id\": \"cat-coffee\", \"reasoning\": \"espresso\"}\n```",
			wantID:  "cat-coffee",
		},
		{
			name:        "null decline",
			content:     `{"category_id": null, "reasoning": "nothing fits"}`,
			wantDecline: true,
		},
		{
			name:        "string null decline",
			content:     `{"category_id": "null", "reasoning": "nothing fits"}`,
			wantDecline: true,
		},
		{
			name:        "empty id decline",
			content:     `{"category_id": "", "reasoning": ""}`,
			wantDecline: true,
		},
		{
			name:    "unknown id rejected",
			content: `{"category_id": "cat-invented", "reasoning": "made it up"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			content: "I think this is coffee.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestion, err := parseSuggestion(tt.content, testOptions)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantDecline {
				assert.Nil(t, suggestion)
				return
			}
			require.NotNil(t, suggestion)
			assert.Equal(t, tt.wantID, suggestion.CategoryID)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("STARBUCKS #1234", 450, testOptions)

	assert.Contains(t, prompt, `"STARBUCKS #1234"`)
	assert.Contains(t, prompt, "450 cents")
	assert.Contains(t, prompt, "cat-coffee: ☕ Coffee")
	assert.Contains(t, prompt, "cat-transport: Transport")
	assert.False(t, strings.Contains(prompt, "cat-transport: ☕"), "icons only render where set")
}

func TestNewOpenAIClientDefaults(t *testing.T) {
	_, err := newOpenAIClient(Config{})
	require.Error(t, err, "an API key is required")

	client, err := newOpenAIClient(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.NotEmpty(t, client.model)
	assert.InDelta(t, 0.3, client.temperature, 0.001)
	assert.Equal(t, 150, client.maxTokens)
}
