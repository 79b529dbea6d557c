// Package generation orchestrates AI-assisted blog post creation: prompt
// building, provider dispatch, token budgeting, content assembly, and
// draft publishing through the host collaborator interfaces.
package generation

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"
)

// Logger interface for service logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Common errors
var (
	// ErrConfiguration marks missing credentials, keywords, or invalid
	// request parameters. Never retried.
	ErrConfiguration = errors.New("generation is not configured")
	// ErrGeneration marks a failed or malformed provider response. Fatal
	// for title and content, absorbed for images.
	ErrGeneration = errors.New("content generation failed")
	// ErrPublish marks a rejected draft; the transaction ends with
	// nothing persisted.
	ErrPublish = errors.New("draft creation failed")
)

// DefaultLogger provides a basic implementation of the Logger interface
type DefaultLogger struct{}

func (l *DefaultLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Printf("[DEBUG] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Printf("[INFO] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Printf("[ERROR] %s %v", msg, keysAndValues)
}

// TextProvider adapts one provider family's wire protocol. On success the
// provider's single text output is returned split into lines in original
// order; every ordinary failure comes back as an error, never a panic.
type TextProvider interface {
	GenerateText(ctx context.Context, apiKey, prompt string, requestedTokens int, model string) ([]string, error)
	Name() string
}

// ImageProvider generates images and returns their public URLs.
type ImageProvider interface {
	GenerateImages(ctx context.Context, apiKey, prompt string, n int) ([]string, error)
	Name() string
}

// CredentialStore resolves provider API keys. Implementations prefer
// deployment-level keys over stored options.
type CredentialStore interface {
	Credential(provider catalog.Provider) string
}

// SettingsStore reads mutable configuration. Keys are listed below;
// implementations return the fallback when a key is unset.
type SettingsStore interface {
	Get(key, fallback string) string
	GetBool(key string, fallback bool) bool
	GetInt(key string, fallback int) int
}

// Setting keys understood by the service.
const (
	SettingSelectedModel         = "selected_model"
	SettingKeywords              = "keywords"
	SettingTone                  = "tone"
	SettingCustomTone            = "custom_tone"
	SettingSelectedCategories    = "selected_categories"
	SettingCharLimit             = "char_limit"
	SettingGenerateImages        = "generate_images"
	SettingPreferredImageService = "preferred_image_service"
	SettingEmailNotifications    = "email_notifications"
	SettingGenerateSEO           = "generate_seo"
	SettingSEOIntegration        = "seo_integration"
	SettingAutoCreate            = "auto_create"
	SettingCustomEndpoint        = "custom_endpoint"
)

// DraftPost is the canonical payload handed to the post store.
type DraftPost struct {
	Title       string
	Content     string
	CategoryIDs []uint
	MetaFields  map[string]string
}

// PostStore creates draft posts in the host system.
type PostStore interface {
	CreateDraft(post DraftPost) (uuid.UUID, error)
}

// MediaStore downloads an image URL and sets it as a post's featured
// image, returning the attachment id.
type MediaStore interface {
	AttachFeaturedImage(postID uuid.UUID, imageURL string) (uuid.UUID, error)
}

// TaxonomyLookup resolves category names for prompt context.
type TaxonomyLookup interface {
	CategoryNameByID(id uint) (string, bool)
}

// MailSender delivers notification mail.
type MailSender interface {
	Send(to, subject, body string) error
}
