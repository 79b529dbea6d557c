package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/phalkmin/WP-AutoInsight/internal/service/blocks"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/prompts"
)

// Request carries the per-run generation parameters. Zero-value fields
// fall back to stored settings where that makes sense (Model only).
type Request struct {
	Keywords    []string
	Tone        prompts.Tone
	CustomTone  string
	CategoryIDs []uint
	CharLimit   int
	Model       string
	GenerateSEO bool
}

// Result reports what a successful run produced.
type Result struct {
	PostID           uuid.UUID `json:"post_id"`
	Title            string    `json:"title"`
	ImageURL         string    `json:"image_url,omitempty"`
	Model            string    `json:"model"`
	ModelSubstituted bool      `json:"model_substituted"`
}

// Options configures a Service. Builder, Credentials, Settings, and Posts
// are required; the rest degrade gracefully when absent.
type Options struct {
	Builder        *prompts.Builder
	Credentials    CredentialStore
	Settings       SettingsStore
	Posts          PostStore
	Media          MediaStore
	Taxonomy       TaxonomyLookup
	Mailer         MailSender
	AdminEmail     string
	TextProviders  map[catalog.Provider]TextProvider
	ImageProviders map[catalog.Provider]ImageProvider
	RateLimiter    *rate.Limiter
	Logger         Logger
}

// Service runs the generation pipeline: title, body, draft, featured
// image, notification. The first three phases are fatal on failure; image
// and mail failures are logged and absorbed.
type Service struct {
	builder    *prompts.Builder
	creds      CredentialStore
	settings   SettingsStore
	posts      PostStore
	media      MediaStore
	taxonomy   TaxonomyLookup
	mailer     MailSender
	adminEmail string
	text       map[catalog.Provider]TextProvider
	images     map[catalog.Provider]ImageProvider
	limiter    *rate.Limiter
	logger     Logger
}

// NewService creates a generation service.
func NewService(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = &DefaultLogger{}
	}
	if opts.RateLimiter == nil {
		// Providers meter by requests per minute; one call per second
		// with a small burst stays well inside every tier.
		opts.RateLimiter = rate.NewLimiter(rate.Limit(1), 3)
	}

	return &Service{
		builder:    opts.Builder,
		creds:      opts.Credentials,
		settings:   opts.Settings,
		posts:      opts.Posts,
		media:      opts.Media,
		taxonomy:   opts.Taxonomy,
		mailer:     opts.Mailer,
		adminEmail: opts.AdminEmail,
		text:       opts.TextProviders,
		images:     opts.ImageProviders,
		limiter:    opts.RateLimiter,
		logger:     opts.Logger,
	}
}

// GeneratePost runs the full pipeline and returns the created draft's id.
func (s *Service) GeneratePost(ctx context.Context, req Request) (*Result, error) {
	if len(req.Keywords) == 0 {
		return nil, fmt.Errorf("%w: at least one keyword is required", ErrConfiguration)
	}
	if req.CharLimit <= 0 {
		return nil, fmt.Errorf("%w: char limit must be positive", ErrConfiguration)
	}

	model := req.Model
	if model == "" {
		model = s.settings.Get(SettingSelectedModel, "gpt-3.5-turbo")
	}

	var (
		provider    catalog.Provider
		substituted bool
	)
	if s.settings.Get(SettingCustomEndpoint, "") != "" &&
		catalog.ResolveProvider(model, s.creds) == catalog.ProviderUnknown {
		// Models served by an OpenAI-compatible endpoint are not in the
		// catalog and always route through the OpenAI adapter.
		provider = catalog.ProviderOpenAI
	} else {
		model, substituted = catalog.ValidateSelectedModel(model, s.creds)
		if model == "" {
			return nil, fmt.Errorf("%w: no provider credentials configured", ErrConfiguration)
		}
		if substituted {
			s.logger.Info("selected model unavailable, substituting", "model", model)
		}
		provider = catalog.ResolveProvider(model, s.creds)
	}

	textProvider, ok := s.text[provider]
	if !ok {
		return nil, fmt.Errorf("%w: no text adapter for provider %q", ErrConfiguration, provider)
	}
	apiKey := s.creds.Credential(provider)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing %s API key", ErrConfiguration, provider)
	}

	categoryNames := s.categoryNames(req.CategoryIDs)
	seoIntegration := s.settings.Get(SettingSEOIntegration, "none")
	wantSEO := req.GenerateSEO && seoIntegration != "" && seoIntegration != "none"

	title, seoMeta, err := s.generateTitle(ctx, textProvider, apiKey, model, req.Keywords, wantSEO)
	if err != nil {
		return nil, err
	}

	content, err := s.generateContent(ctx, textProvider, apiKey, model, req, categoryNames, seoIntegration)
	if err != nil {
		return nil, err
	}

	draft := DraftPost{Title: title, Content: content, CategoryIDs: req.CategoryIDs}
	if wantSEO {
		draft.MetaFields = MetaFieldsFor(seoIntegration, seoMeta)
	}

	postID, err := s.posts.CreateDraft(draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublish, err)
	}
	s.logger.Info("draft created", "post_id", postID, "title", title, "model", model)

	result := &Result{PostID: postID, Title: title, Model: model, ModelSubstituted: substituted}

	if s.media != nil && s.settings.GetBool(SettingGenerateImages, true) {
		if url := s.acquireFeaturedImage(ctx, provider, req.Keywords, categoryNames); url != "" {
			if _, err := s.media.AttachFeaturedImage(postID, url); err != nil {
				s.logger.Error("failed to attach featured image", "error", err, "post_id", postID)
			} else {
				result.ImageURL = url
			}
		}
	}

	s.notifyCreated(postID, title)

	return result, nil
}

func (s *Service) generateTitle(ctx context.Context, p TextProvider, apiKey, model string, keywords []string, wantSEO bool) (string, SEOMetadata, error) {
	if wantSEO {
		lines, err := s.callText(ctx, p, apiKey, s.builder.BuildTitleAndSEOPrompt(keywords), prompts.TitleAndSEOTokens, model)
		if err != nil {
			return "", SEOMetadata{}, err
		}
		title, meta := ParseTitleAndSEO(lines)
		if title == "" {
			return "", SEOMetadata{}, fmt.Errorf("%w: response contained no title", ErrGeneration)
		}
		return title, meta, nil
	}

	lines, err := s.callText(ctx, p, apiKey, s.builder.BuildTitlePrompt(keywords), prompts.TitleTokens, model)
	if err != nil {
		return "", SEOMetadata{}, err
	}

	var title string
	if len(lines) > 0 {
		title = strings.Trim(strings.TrimSpace(lines[0]), "\"'`")
	}
	if title == "" {
		return "", SEOMetadata{}, fmt.Errorf("%w: response contained no title", ErrGeneration)
	}
	return title, SEOMetadata{}, nil
}

func (s *Service) generateContent(ctx context.Context, p TextProvider, apiKey, model string, req Request, categoryNames []string, seoIntegration string) (string, error) {
	prompt := s.builder.BuildContentPrompt(prompts.ContentInput{
		Keywords:       req.Keywords,
		Tone:           req.Tone,
		CategoryNames:  categoryNames,
		CharLimit:      req.CharLimit,
		SEOIntegration: seoIntegration,
	})

	lines, err := s.callText(ctx, p, apiKey, prompt, req.CharLimit, model)
	if err != nil {
		return "", err
	}

	filtered := filterContentLines(lines)
	if len(filtered) == 0 {
		return "", fmt.Errorf("%w: response contained no usable content", ErrGeneration)
	}

	return blocks.Render(blocks.Parse(filtered)), nil
}

func (s *Service) callText(ctx context.Context, p TextProvider, apiKey, prompt string, requestedTokens int, model string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	lines, err := p.GenerateText(ctx, apiKey, prompt, requestedTokens, model)
	if err != nil {
		s.logger.Error("text generation failed",
			"provider", p.Name(),
			"model", model,
			"prompt", truncate(prompt, 100),
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return lines, nil
}

// filterContentLines removes structural leftovers from raw output: blank
// lines, stray <title> markup, and unparsed [SEO] markers.
func filterContentLines(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if strings.Contains(line, "<title>") || strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}

	var out []string
	for _, line := range kept {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "<title>") || strings.Contains(line, "[SEO]") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func (s *Service) categoryNames(ids []uint) []string {
	if s.taxonomy == nil {
		return nil
	}
	var names []string
	for _, id := range ids {
		if name, ok := s.taxonomy.CategoryNameByID(id); ok {
			names = append(names, name)
		}
	}
	return names
}

func (s *Service) notifyCreated(postID uuid.UUID, title string) {
	if s.mailer == nil || s.adminEmail == "" ||
		!s.settings.GetBool(SettingEmailNotifications, false) {
		return
	}

	subject := "New AI-Generated Post: " + title
	body := fmt.Sprintf("A new draft post %q has been created automatically.\n\nPost ID: %s\n", title, postID)
	if err := s.mailer.Send(s.adminEmail, subject, body); err != nil {
		s.logger.Error("failed to send notification mail", "error", err)
	}
}

// NotifyFailure mails the administrator about a failed scheduled run.
// Manual runs surface errors directly, so callers use this only when no
// one is watching.
func (s *Service) NotifyFailure(genErr error) {
	if s.mailer == nil || s.adminEmail == "" ||
		!s.settings.GetBool(SettingEmailNotifications, false) {
		return
	}

	body := fmt.Sprintf("Scheduled post generation failed.\n\nReason: %v\n", genErr)
	if err := s.mailer.Send(s.adminEmail, "AI Post Generation Failed", body); err != nil {
		s.logger.Error("failed to send failure mail", "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
