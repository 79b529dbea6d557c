package generation

import (
	"context"

	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"
)

// imageCandidates returns the ordered image services to try for one run.
// An explicit non-auto preference with a usable credential is tried alone;
// a preference whose credential is missing falls through to inference. When
// inferring, DALL-E is tried first when the text run used OpenAI, then
// Stability, each gated on its own credential.
func (s *Service) imageCandidates(textProvider catalog.Provider) []catalog.Provider {
	usable := func(p catalog.Provider) bool {
		return s.images[p] != nil && s.creds.Credential(p) != ""
	}

	pref := s.settings.Get(SettingPreferredImageService, "auto")
	if pref != "" && pref != "auto" {
		if p := catalog.Provider(pref); usable(p) {
			return []catalog.Provider{p}
		}
	}

	var out []catalog.Provider
	if textProvider == catalog.ProviderOpenAI && usable(catalog.ProviderOpenAI) {
		out = append(out, catalog.ProviderOpenAI)
	}
	if usable(catalog.ProviderStability) {
		out = append(out, catalog.ProviderStability)
	}
	return out
}

// acquireFeaturedImage tries each candidate service in order and returns
// the first URL produced, or "" when every candidate fails or none exist.
// Image failures never fail the post.
func (s *Service) acquireFeaturedImage(ctx context.Context, textProvider catalog.Provider, keywords, categoryNames []string) string {
	candidates := s.imageCandidates(textProvider)
	if len(candidates) == 0 {
		s.logger.Debug("no image service available, skipping featured image")
		return ""
	}

	prompt := s.builder.BuildImagePrompt(keywords, categoryNames)

	for _, candidate := range candidates {
		provider := s.images[candidate]

		if err := s.limiter.Wait(ctx); err != nil {
			return ""
		}
		urls, err := provider.GenerateImages(ctx, s.creds.Credential(candidate), prompt, 1)
		if err != nil {
			s.logger.Error("image generation failed",
				"provider", provider.Name(),
				"error", err)
			continue
		}
		if len(urls) > 0 {
			return urls[0]
		}
	}
	return ""
}
