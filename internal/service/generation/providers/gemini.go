package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/tokens"
)

// geminiModelAliases maps retired model names to current ones.
var geminiModelAliases = map[string]string{
	"gemini":     "gemini-1.5-flash",
	"gemini-pro": "gemini-1.5-flash",
}

// GeminiProvider implements text generation via the Google Gemini API.
// The genai client binds the API key at construction, so a short-lived
// client is built per call.
type GeminiProvider struct {
	logger generation.Logger
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(logger generation.Logger) *GeminiProvider {
	if logger == nil {
		logger = &generation.DefaultLogger{}
	}
	return &GeminiProvider{logger: logger}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// GenerateText implements the TextProvider interface.
func (p *GeminiProvider) GenerateText(ctx context.Context, apiKey, prompt string, requestedTokens int, model string) ([]string, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	if mapped, ok := geminiModelAliases[model]; ok {
		model = mapped
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	genModel := client.GenerativeModel(model)
	genModel.SetMaxOutputTokens(int32(tokens.Available(prompt, requestedTokens, model)))

	resp, err := genModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		p.logger.Error("Gemini API error", "error", err, "model", model)
		return nil, fmt.Errorf("Gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return nil, errors.New("no text content in Gemini response")
	}

	return strings.Split(sb.String(), "\n"), nil
}
