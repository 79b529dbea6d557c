package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/phalkmin/WP-AutoInsight/internal/repository"
	"github.com/phalkmin/WP-AutoInsight/internal/repository/cache"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
)

// knownSettingKeys is the allowlist for the settings surface.
var knownSettingKeys = map[string]bool{
	generation.SettingSelectedModel:         true,
	generation.SettingKeywords:              true,
	generation.SettingTone:                  true,
	generation.SettingCustomTone:            true,
	generation.SettingSelectedCategories:    true,
	generation.SettingCharLimit:             true,
	generation.SettingGenerateImages:        true,
	generation.SettingPreferredImageService: true,
	generation.SettingEmailNotifications:    true,
	generation.SettingGenerateSEO:           true,
	generation.SettingSEOIntegration:        true,
	generation.SettingAutoCreate:            true,
	generation.SettingCustomEndpoint:        true,
	"openai_api_key":                        true,
	"claude_api_key":                        true,
	"gemini_api_key":                        true,
	"stability_api_key":                     true,
}

// catalogAffectingKeys are settings whose change invalidates the cached
// model catalog.
var catalogAffectingKeys = map[string]bool{
	generation.SettingCustomEndpoint: true,
	"openai_api_key":                 true,
	"claude_api_key":                 true,
	"gemini_api_key":                 true,
	"stability_api_key":              true,
}

// SettingsHandler reads and updates stored configuration
type SettingsHandler struct {
	Settings repository.SettingRepository
	Cache    *cache.Repository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(repos *repository.Factory) *SettingsHandler {
	return &SettingsHandler{
		Settings: repos.SettingRepository,
		Cache:    repos.CacheRepository,
	}
}

// GetSettings returns all stored settings with credentials redacted
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.All()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch settings: " + err.Error(),
		})
	}

	for key, value := range settings {
		if strings.HasSuffix(key, "_api_key") && value != "" {
			settings[key] = "********"
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    settings,
	})
}

// UpdateSettings stores the submitted key/value pairs. Unknown keys are
// rejected rather than silently stored.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	updates := map[string]string{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
	}

	for key := range updates {
		if !knownSettingKeys[key] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Unknown setting: " + key,
			})
		}
	}

	invalidateCatalog := false
	for key, value := range updates {
		if err := h.Settings.Set(key, value); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to store setting: " + err.Error(),
			})
		}
		if catalogAffectingKeys[key] {
			invalidateCatalog = true
		}
	}

	if invalidateCatalog {
		h.Cache.InvalidateAvailableModels()
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
