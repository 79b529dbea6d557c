package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/tokens"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// claudeModelAliases maps retired short model names that may linger in
// stored settings to their dated successors.
var claudeModelAliases = map[string]string{
	"claude":            "claude-3-haiku-20240307",
	"claude-3-haiku":    "claude-3-haiku-20240307",
	"claude-3.5-sonnet": "claude-3.5-sonnet-20241022",
	"claude-3-sonnet":   "claude-3.5-sonnet-20241022",
	"claude-3-opus":     "claude-3.7-sonnet-20250219",
}

// ClaudeProvider implements text generation via the Anthropic messages API.
type ClaudeProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     generation.Logger
}

// ClaudeMessage represents a message in the Anthropic messages API
type ClaudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClaudeRequest represents a request to the Anthropic messages API
type ClaudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []ClaudeMessage `json:"messages"`
}

// ClaudeResponse represents the response from the Anthropic messages API
type ClaudeResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewClaudeProvider creates an Anthropic provider. An empty baseURL
// selects the official endpoint.
func NewClaudeProvider(baseURL string, logger generation.Logger) *ClaudeProvider {
	if baseURL == "" {
		baseURL = anthropicMessagesURL
	}
	if logger == nil {
		logger = &generation.DefaultLogger{}
	}

	return &ClaudeProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// Name returns the provider name
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// GenerateText implements the TextProvider interface.
func (p *ClaudeProvider) GenerateText(ctx context.Context, apiKey, prompt string, requestedTokens int, model string) ([]string, error) {
	if apiKey == "" {
		return nil, errors.New("Claude API key is required")
	}

	if mapped, ok := claudeModelAliases[model]; ok {
		model = mapped
	}

	request := ClaudeRequest{
		Model:     model,
		MaxTokens: tokens.Available(prompt, requestedTokens, model),
		Messages:  []ClaudeMessage{{Role: "user", Content: prompt}},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Error("Claude API error",
			"status", resp.Status,
			"body", string(body))
		return nil, fmt.Errorf("API error: %s", resp.Status)
	}

	var response ClaudeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(response.Content) == 0 {
		return nil, errors.New("empty response from Claude")
	}

	return strings.Split(response.Content[0].Text, "\n"), nil
}
