package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/phalkmin/WP-AutoInsight/internal/repository"
	"github.com/phalkmin/WP-AutoInsight/internal/repository/cache"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/providers"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/tokens"
)

// ModelsHandler serves the credential-filtered model catalog
type ModelsHandler struct {
	Credentials generation.CredentialStore
	Settings    repository.SettingRepository
	Cache       *cache.Repository
	Logger      generation.Logger
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(creds generation.CredentialStore, repos *repository.Factory, logger generation.Logger) *ModelsHandler {
	if logger == nil {
		logger = &generation.DefaultLogger{}
	}
	return &ModelsHandler{
		Credentials: creds,
		Settings:    repos.SettingRepository,
		Cache:       repos.CacheRepository,
		Logger:      logger,
	}
}

// ListModels returns the models usable with the configured credentials.
// Results are cached for an hour; ?refresh=1 forces a rebuild.
func (h *ModelsHandler) ListModels(c *fiber.Ctx) error {
	refresh := c.Query("refresh") == "1"

	if !refresh {
		if cached, err := h.Cache.GetAvailableModels(); err == nil && cached != nil {
			return c.JSON(fiber.Map{
				"success": true,
				"data":    cached,
				"cached":  true,
			})
		}
	}

	descriptors := catalog.Available(h.Credentials)
	descriptors = append(descriptors, h.customEndpointModels(c)...)

	if err := h.Cache.CacheAvailableModels(descriptors); err != nil {
		h.Logger.Error("failed to cache model catalog", "error", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    descriptors,
	})
}

// customEndpointModels lists models served by a configured
// OpenAI-compatible endpoint. Failures degrade to the static catalog.
func (h *ModelsHandler) customEndpointModels(c *fiber.Ctx) []catalog.ModelDescriptor {
	endpoint := h.Settings.Get(generation.SettingCustomEndpoint, "")
	if endpoint == "" {
		return nil
	}

	provider := providers.NewOpenAIProvider(endpoint, h.Logger)
	ids, err := provider.ListModels(c.Context(), h.Credentials.Credential(catalog.ProviderOpenAI))
	if err != nil {
		h.Logger.Error("failed to list custom endpoint models", "endpoint", endpoint, "error", err)
		return nil
	}

	descriptors := make([]catalog.ModelDescriptor, 0, len(ids))
	for _, id := range ids {
		descriptors = append(descriptors, catalog.ModelDescriptor{
			ID:            id,
			Provider:      catalog.ProviderOpenAI,
			DisplayName:   id,
			Description:   "Served by custom endpoint",
			ContextWindow: tokens.ContextWindow(id),
		})
	}
	return descriptors
}
