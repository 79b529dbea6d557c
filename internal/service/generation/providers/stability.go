package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
)

const (
	stabilityTextToImageURL = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

	stabilityCfgScale    = 7
	stabilitySteps       = 30
	stabilityDimension   = 1024
	stabilityStylePreset = "photographic"
)

// StabilityProvider implements image generation via the Stability AI SDXL
// endpoint. Artifacts arrive base64-encoded, so they are written into the
// local upload directory and exposed under the public base URL.
type StabilityProvider struct {
	baseURL       string
	uploadDir     string
	publicBaseURL string
	httpClient    *http.Client
	logger        generation.Logger
}

// StabilityTextPrompt represents one weighted prompt term
type StabilityTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// StabilityRequest represents a request to the text-to-image API
type StabilityRequest struct {
	TextPrompts []StabilityTextPrompt `json:"text_prompts"`
	CfgScale    int                   `json:"cfg_scale"`
	Steps       int                   `json:"steps"`
	Samples     int                   `json:"samples"`
	Height      int                   `json:"height"`
	Width       int                   `json:"width"`
	StylePreset string                `json:"style_preset"`
}

// StabilityResponse represents the response from the text-to-image API
type StabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
		Seed         int64  `json:"seed"`
	} `json:"artifacts"`
}

// NewStabilityProvider creates a Stability AI provider writing images into
// uploadDir and returning URLs rooted at publicBaseURL.
func NewStabilityProvider(baseURL, uploadDir, publicBaseURL string, logger generation.Logger) *StabilityProvider {
	if baseURL == "" {
		baseURL = stabilityTextToImageURL
	}
	if logger == nil {
		logger = &generation.DefaultLogger{}
	}

	return &StabilityProvider{
		baseURL:       baseURL,
		uploadDir:     uploadDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		httpClient:    &http.Client{Timeout: requestTimeout},
		logger:        logger,
	}
}

// Name returns the provider name
func (p *StabilityProvider) Name() string {
	return "stability"
}

// GenerateImages implements the ImageProvider interface.
func (p *StabilityProvider) GenerateImages(ctx context.Context, apiKey, prompt string, n int) ([]string, error) {
	if apiKey == "" {
		return nil, errors.New("Stability API key is required")
	}
	if n <= 0 {
		n = 1
	}

	request := StabilityRequest{
		TextPrompts: []StabilityTextPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    stabilityCfgScale,
		Steps:       stabilitySteps,
		Samples:     n,
		Height:      stabilityDimension,
		Width:       stabilityDimension,
		StylePreset: stabilityStylePreset,
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
	httpReq.Header.Set("Accept", "application/json")
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
		p.logger.Error("Stability API error",
			"status", resp.Status,
			"body", string(body))
		return nil, fmt.Errorf("API error: %s", resp.Status)
	}

	var response StabilityResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(response.Artifacts) == 0 {
		return nil, errors.New("empty response from Stability")
	}

	urls := make([]string, 0, len(response.Artifacts))
	for _, artifact := range response.Artifacts {
		url, err := p.saveArtifact(artifact.Base64)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (p *StabilityProvider) saveArtifact(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode image data: %w", err)
	}

	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := "stability-" + uuid.New().String() + ".png"
	if err := os.WriteFile(filepath.Join(p.uploadDir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return p.publicBaseURL + "/" + filename, nil
}
