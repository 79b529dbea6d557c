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
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	openAIImageSize      = "1792x1024"
	openAITemperature    = 0.8
)

// OpenAIProvider implements text generation via the chat completions API
// and image generation via DALL-E. The base URL is overridable so
// OpenAI-compatible endpoints can be used.
type OpenAIProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     generation.Logger
}

// OpenAIMessage represents a message in the OpenAI chat API
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIChatRequest represents a request to the chat completions API
type OpenAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

// OpenAIChatResponse represents the response from the chat completions API
type OpenAIChatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int    `json:"created"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// OpenAIImageRequest represents a request to the image generations API
type OpenAIImageRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

// OpenAIImageResponse represents the response from the image generations API
type OpenAIImageResponse struct {
	Created int `json:"created"`
	Data    []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// OpenAIModelsResponse represents the response from the models listing API
type OpenAIModelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// NewOpenAIProvider creates an OpenAI provider. An empty baseURL selects
// the official endpoint.
func NewOpenAIProvider(baseURL string, logger generation.Logger) *OpenAIProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if logger == nil {
		logger = &generation.DefaultLogger{}
	}

	return &OpenAIProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// GenerateText implements the TextProvider interface. The response budget
// is clamped to what the model's context window leaves after the prompt.
func (p *OpenAIProvider) GenerateText(ctx context.Context, apiKey, prompt string, requestedTokens int, model string) ([]string, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	request := OpenAIChatRequest{
		Model:       model,
		Messages:    []OpenAIMessage{{Role: "user", Content: prompt}},
		Temperature: openAITemperature,
		MaxTokens:   tokens.Available(prompt, requestedTokens, model),
	}

	body, err := p.post(ctx, p.baseURL+"/chat/completions", apiKey, request)
	if err != nil {
		return nil, err
	}

	var response OpenAIChatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, errors.New("empty response from OpenAI")
	}

	return strings.Split(response.Choices[0].Message.Content, "\n"), nil
}

// GenerateImages implements the ImageProvider interface using DALL-E.
func (p *OpenAIProvider) GenerateImages(ctx context.Context, apiKey, prompt string, n int) ([]string, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if n <= 0 {
		n = 1
	}

	request := OpenAIImageRequest{Prompt: prompt, N: n, Size: openAIImageSize}

	body, err := p.post(ctx, p.baseURL+"/images/generations", apiKey, request)
	if err != nil {
		return nil, err
	}

	var response OpenAIImageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(response.Data) == 0 {
		return nil, errors.New("empty image response from OpenAI")
	}

	urls := make([]string, 0, len(response.Data))
	for _, d := range response.Data {
		urls = append(urls, d.URL)
	}
	return urls, nil
}

// ListModels returns the model ids available at the configured endpoint.
// Used to surface models served by OpenAI-compatible servers.
func (p *OpenAIProvider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

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
		return nil, fmt.Errorf("API error: %s", resp.Status)
	}

	var response OpenAIModelsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	ids := make([]string, 0, len(response.Data))
	for _, m := range response.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (p *OpenAIProvider) post(ctx context.Context, url, apiKey string, request interface{}) ([]byte, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

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
		p.logger.Error("OpenAI API error",
			"status", resp.Status,
			"body", string(body))
		return nil, fmt.Errorf("API error: %s", resp.Status)
	}

	return body, nil
}
