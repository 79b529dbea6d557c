package generation

import "github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"

// credentialSettingKeys names the stored-option fallback for each provider.
var credentialSettingKeys = map[catalog.Provider]string{
	catalog.ProviderOpenAI:    "openai_api_key",
	catalog.ProviderClaude:    "claude_api_key",
	catalog.ProviderGemini:    "gemini_api_key",
	catalog.ProviderStability: "stability_api_key",
}

// Credentials resolves provider API keys, preferring keys fixed at
// deployment time over the mutable settings store. An empty result means
// the provider is unavailable.
type Credentials struct {
	OpenAI    string
	Claude    string
	Gemini    string
	Stability string

	Settings SettingsStore
}

func (c *Credentials) Credential(provider catalog.Provider) string {
	var fixed string
	switch provider {
	case catalog.ProviderOpenAI:
		fixed = c.OpenAI
	case catalog.ProviderClaude:
		fixed = c.Claude
	case catalog.ProviderGemini:
		fixed = c.Gemini
	case catalog.ProviderStability:
		fixed = c.Stability
	}
	if fixed != "" {
		return fixed
	}

	if c.Settings != nil {
		if key, ok := credentialSettingKeys[provider]; ok {
			return c.Settings.Get(key, "")
		}
	}
	return ""
}
