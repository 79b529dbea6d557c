// Package catalog holds the static model catalog and maps model
// identifiers to provider families. Dispatch happens here once, never by
// string sniffing in the adapters.
package catalog

import (
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/tokens"
)

// Provider identifies a text- or image-generation service family.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderClaude    Provider = "claude"
	ProviderGemini    Provider = "gemini"
	ProviderStability Provider = "stability"
	ProviderUnknown   Provider = ""
)

// Credentials resolves an API key for a provider family. An empty string
// means the provider is unavailable.
type Credentials interface {
	Credential(provider Provider) string
}

// ModelDescriptor is an immutable catalog entry for a text model.
type ModelDescriptor struct {
	ID            string   `json:"id"`
	Provider      Provider `json:"provider"`
	DisplayName   string   `json:"name"`
	Description   string   `json:"description"`
	CostTier      int      `json:"cost_tier"`
	ContextWindow int      `json:"context_window"`
}

// models lists the catalog in fixed order: OpenAI, Claude, Gemini, each
// group ordered cheap, medium, premium.
var models = []ModelDescriptor{
	{ID: "gpt-3.5-turbo", Provider: ProviderOpenAI, DisplayName: "GPT-3.5 Turbo", Description: "Fast and cost-effective", CostTier: 1},
	{ID: "gpt-4o", Provider: ProviderOpenAI, DisplayName: "GPT-4o", Description: "Fast, intelligent, flexible GPT model", CostTier: 2},
	{ID: "gpt-4.5-preview", Provider: ProviderOpenAI, DisplayName: "GPT-4.5 Preview", Description: "Largest and most capable GPT model", CostTier: 3},
	{ID: "claude-3-haiku-20240307", Provider: ProviderClaude, DisplayName: "Claude 3 Haiku", Description: "Fast and cost-effective", CostTier: 1},
	{ID: "claude-3.5-sonnet-20241022", Provider: ProviderClaude, DisplayName: "Claude 3.5 Sonnet", Description: "Improved balanced performance", CostTier: 2},
	{ID: "claude-3.7-sonnet-20250219", Provider: ProviderClaude, DisplayName: "Claude 3.7 Sonnet", Description: "Latest premium model with advanced capabilities", CostTier: 3},
	{ID: "gemini-1.5-flash", Provider: ProviderGemini, DisplayName: "Gemini 1.5 Flash", Description: "Fast and versatile performance across diverse tasks", CostTier: 1},
	{ID: "gemini-1.5-pro", Provider: ProviderGemini, DisplayName: "Gemini 1.5 Pro", Description: "Complex reasoning with 2M token context window", CostTier: 2},
	{ID: "gemini-2.0-pro-exp-02-05", Provider: ProviderGemini, DisplayName: "Gemini 2.0 Pro", Description: "Most powerful Gemini model with advanced reasoning", CostTier: 3},
}

// Available returns catalog entries whose provider has a non-empty
// credential, preserving catalog order.
func Available(creds Credentials) []ModelDescriptor {
	var out []ModelDescriptor
	for _, m := range models {
		if creds.Credential(m.Provider) == "" {
			continue
		}
		m.ContextWindow = tokens.ContextWindow(m.ID)
		out = append(out, m)
	}
	return out
}

// ResolveProvider maps a model id to its owning provider family,
// considering only providers with a present credential. Returns
// ProviderUnknown when no available entry matches.
func ResolveProvider(modelID string, creds Credentials) Provider {
	for _, m := range Available(creds) {
		if m.ID == modelID {
			return m.Provider
		}
	}
	return ProviderUnknown
}

// ValidateSelectedModel checks that the configured model is still in the
// available set. When it is not (for example its provider's credential was
// removed), the first model of the first available provider group is
// returned along with substituted=true so callers can notify the user.
func ValidateSelectedModel(modelID string, creds Credentials) (id string, substituted bool) {
	available := Available(creds)
	for _, m := range available {
		if m.ID == modelID {
			return modelID, false
		}
	}
	if len(available) == 0 {
		return "", modelID != ""
	}
	return available[0].ID, true
}
