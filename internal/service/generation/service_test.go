package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/prompts"
)

type fakeCreds map[catalog.Provider]string

func (f fakeCreds) Credential(p catalog.Provider) string { return f[p] }

type fakeSettings map[string]string

func (f fakeSettings) Get(key, fallback string) string {
	if v, ok := f[key]; ok {
		return v
	}
	return fallback
}

func (f fakeSettings) GetBool(key string, fallback bool) bool {
	switch f.Get(key, "") {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return fallback
}

func (f fakeSettings) GetInt(key string, fallback int) int { return fallback }

// fakeText replays scripted responses in call order.
type fakeText struct {
	name      string
	responses [][]string
	errs      []error
	prompts   []string
	models    []string
}

func (f *fakeText) GenerateText(_ context.Context, _, prompt string, _ int, model string) ([]string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return nil, errors.New("unscripted call")
}

func (f *fakeText) Name() string { return f.name }

type fakeImages struct {
	name string
	urls []string
	err  error
}

func (f *fakeImages) GenerateImages(context.Context, string, string, int) ([]string, error) {
	return f.urls, f.err
}

func (f *fakeImages) Name() string { return f.name }

type fakePosts struct {
	draft DraftPost
	id    uuid.UUID
	err   error
}

func (f *fakePosts) CreateDraft(post DraftPost) (uuid.UUID, error) {
	f.draft = post
	if f.err != nil {
		return uuid.Nil, f.err
	}
	if f.id == uuid.Nil {
		f.id = uuid.New()
	}
	return f.id, nil
}

type fakeMedia struct {
	postID uuid.UUID
	url    string
	err    error
}

func (f *fakeMedia) AttachFeaturedImage(postID uuid.UUID, imageURL string) (uuid.UUID, error) {
	f.postID = postID
	f.url = imageURL
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return uuid.New(), nil
}

type fakeTaxonomy map[uint]string

func (f fakeTaxonomy) CategoryNameByID(id uint) (string, bool) {
	name, ok := f[id]
	return name, ok
}

type fakeMailer struct {
	to, subject, body string
	sent              int
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	f.sent++
	return nil
}

func newTestService(t *testing.T, text *fakeText, opts func(*Options)) (*Service, *fakePosts, *fakeMedia, *fakeMailer) {
	t.Helper()

	posts := &fakePosts{}
	media := &fakeMedia{}
	mailer := &fakeMailer{}

	o := Options{
		Builder:     prompts.NewBuilder("Test Blog", "testing"),
		Credentials: fakeCreds{catalog.ProviderOpenAI: "sk-test"},
		Settings:    fakeSettings{},
		Posts:       posts,
		Media:       media,
		Taxonomy:    fakeTaxonomy{1: "Tutorials", 2: "Tools"},
		Mailer:      mailer,
		AdminEmail:  "admin@example.com",
		TextProviders: map[catalog.Provider]TextProvider{
			catalog.ProviderOpenAI: text,
		},
		RateLimiter: rate.NewLimiter(rate.Inf, 1),
	}
	if opts != nil {
		opts(&o)
	}
	return NewService(o), posts, media, mailer
}

func TestGeneratePost(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{`"Great Coffee"`},
		{"<h2>Intro</h2>", "Coffee is good.", "", "<h3>Beans</h3>", "Choose well."},
	}}
	svc, posts, _, _ := newTestService(t, text, nil)

	result, err := svc.GeneratePost(context.Background(), Request{
		Keywords:    []string{"coffee"},
		Tone:        prompts.ToneDefault,
		CategoryIDs: []uint{1},
		CharLimit:   500,
		Model:       "gpt-3.5-turbo",
	})
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}

	if result.Title != "Great Coffee" {
		t.Errorf("title = %q, want quotes trimmed", result.Title)
	}
	if posts.draft.Title != "Great Coffee" {
		t.Errorf("draft title = %q", posts.draft.Title)
	}
	for _, want := range []string{
		`<!-- wp:heading {"level":2} --><h2 class="wp-block-heading">Intro</h2><!-- /wp:heading -->`,
		`<!-- wp:paragraph --><p>Coffee is good.</p><!-- /wp:paragraph -->`,
		`<h3 class="wp-block-heading">Beans</h3>`,
	} {
		if !strings.Contains(posts.draft.Content, want) {
			t.Errorf("draft content missing %q:\n%s", want, posts.draft.Content)
		}
	}
	if diff := cmp.Diff([]uint{1}, posts.draft.CategoryIDs); diff != "" {
		t.Errorf("category ids mismatch (-want +got):\n%s", diff)
	}
	if len(text.prompts) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(text.prompts))
	}
	if !strings.Contains(text.prompts[1], "categories: Tutorials") {
		t.Errorf("content prompt missing resolved category name:\n%s", text.prompts[1])
	}
}

func TestGeneratePostRequiresKeywords(t *testing.T) {
	svc, _, _, _ := newTestService(t, &fakeText{name: "openai"}, nil)

	_, err := svc.GeneratePost(context.Background(), Request{CharLimit: 500, Model: "gpt-3.5-turbo"})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestGeneratePostRequiresCharLimit(t *testing.T) {
	svc, _, _, _ := newTestService(t, &fakeText{name: "openai"}, nil)

	_, err := svc.GeneratePost(context.Background(), Request{Keywords: []string{"go"}, Model: "gpt-3.5-turbo"})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestGeneratePostNoCredentials(t *testing.T) {
	svc, _, _, _ := newTestService(t, &fakeText{name: "openai"}, func(o *Options) {
		o.Credentials = fakeCreds{}
	})

	_, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestGeneratePostSubstitutesUnavailableModel(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"Body text."},
	}}
	svc, _, _, _ := newTestService(t, text, nil)

	// Only an OpenAI key is present, so a Claude selection falls back to
	// the first available catalog entry.
	result, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "claude-3-haiku-20240307",
	})
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}
	if !result.ModelSubstituted {
		t.Error("expected ModelSubstituted")
	}
	if result.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q", result.Model)
	}
}

func TestGeneratePostProviderFailureIsFatal(t *testing.T) {
	text := &fakeText{name: "openai", errs: []error{errors.New("boom")}}
	svc, posts, _, _ := newTestService(t, text, nil)

	_, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
	if posts.draft.Title != "" {
		t.Error("draft created despite generation failure")
	}
}

func TestGeneratePostEmptyContentIsFatal(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"", "  ", "<title>leftover</title>", "[SEO]"},
	}}
	svc, _, _, _ := newTestService(t, text, nil)

	_, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
}

func TestGeneratePostPublishFailure(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"Body."},
	}}
	svc, posts, _, _ := newTestService(t, text, nil)
	posts.err = errors.New("db down")

	_, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	})
	if !errors.Is(err, ErrPublish) {
		t.Errorf("err = %v, want ErrPublish", err)
	}
}

func TestGeneratePostWithSEO(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{
			"[TITLE]",
			"SEO Title",
			"[SEO]",
			"Meta Description: the description",
			"Primary Keyword: go",
			"Secondary Keywords: golang, testing",
			"Social Excerpt: read this",
			"[END]",
		},
		{"Body."},
	}}
	svc, posts, _, _ := newTestService(t, text, func(o *Options) {
		o.Settings = fakeSettings{SettingSEOIntegration: "yoast"}
	})

	result, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo", GenerateSEO: true,
	})
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}

	if result.Title != "SEO Title" {
		t.Errorf("title = %q", result.Title)
	}
	if !strings.Contains(text.prompts[0], "[TITLE]") {
		t.Error("first call did not use the combined title+SEO prompt")
	}
	want := map[string]string{
		"_yoast_wpseo_metadesc":              "the description",
		"_yoast_wpseo_focuskw":               "go",
		"_yoast_wpseo_metakeywords":          "golang, testing",
		"_yoast_wpseo_opengraph-description": "read this",
	}
	if diff := cmp.Diff(want, posts.draft.MetaFields); diff != "" {
		t.Errorf("meta fields mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratePostSEODisabledByIntegration(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Plain Title"},
		{"Body."},
	}}
	svc, posts, _, _ := newTestService(t, text, nil) // seo_integration defaults to none

	_, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo", GenerateSEO: true,
	})
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}
	if strings.Contains(text.prompts[0], "[TITLE]") {
		t.Error("combined prompt used despite inactive integration")
	}
	if posts.draft.MetaFields != nil {
		t.Errorf("meta fields set: %v", posts.draft.MetaFields)
	}
}

func TestGeneratePostAttachesFeaturedImage(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"Body."},
	}}
	svc, posts, media, _ := newTestService(t, text, func(o *Options) {
		o.ImageProviders = map[catalog.Provider]ImageProvider{
			catalog.ProviderOpenAI: &fakeImages{name: "openai", urls: []string{"https://img.example/a.png"}},
		}
	})

	result, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	})
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}
	if result.ImageURL != "https://img.example/a.png" {
		t.Errorf("image url = %q", result.ImageURL)
	}
	if media.postID != posts.id {
		t.Error("image attached to wrong post")
	}
}

func TestGeneratePostImageFailureIsAbsorbed(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"Body."},
	}}
	svc, _, _, _ := newTestService(t, text, func(o *Options) {
		o.ImageProviders = map[catalog.Provider]ImageProvider{
			catalog.ProviderOpenAI: &fakeImages{name: "openai", err: errors.New("image api down")},
		}
	})

	result, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	})
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}
	if result.ImageURL != "" {
		t.Errorf("image url = %q, want empty", result.ImageURL)
	}
}

func TestGeneratePostSendsNotification(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"Body."},
	}}
	svc, _, _, mailer := newTestService(t, text, func(o *Options) {
		o.Settings = fakeSettings{SettingEmailNotifications: "true"}
	})

	if _, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	}); err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}

	if mailer.sent != 1 {
		t.Fatalf("sent = %d mails", mailer.sent)
	}
	if mailer.to != "admin@example.com" {
		t.Errorf("to = %q", mailer.to)
	}
	if !strings.Contains(mailer.subject, "Title") {
		t.Errorf("subject = %q", mailer.subject)
	}
}

func TestGeneratePostNotificationsOffByDefault(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"Body."},
	}}
	svc, _, _, mailer := newTestService(t, text, nil)

	if _, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "gpt-3.5-turbo",
	}); err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}
	if mailer.sent != 0 {
		t.Errorf("sent = %d mails, want 0", mailer.sent)
	}
}

func TestGeneratePostCustomEndpointModel(t *testing.T) {
	text := &fakeText{name: "openai", responses: [][]string{
		{"Title"},
		{"Body."},
	}}
	svc, _, _, _ := newTestService(t, text, func(o *Options) {
		o.Settings = fakeSettings{SettingCustomEndpoint: "http://localhost:8080/v1"}
	})

	// A model unknown to the catalog routes through the OpenAI adapter
	// untouched when a custom endpoint is configured.
	result, err := svc.GeneratePost(context.Background(), Request{
		Keywords: []string{"go"}, CharLimit: 500, Model: "local-llama",
	})
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}
	if result.ModelSubstituted {
		t.Error("custom endpoint model should not be substituted")
	}
	if text.models[0] != "local-llama" {
		t.Errorf("provider saw model %q", text.models[0])
	}
}

func TestFilterContentLines(t *testing.T) {
	got := filterContentLines([]string{
		"<title>Doc</title>",
		"",
		"  First paragraph.  ",
		"[SEO]",
		"Second paragraph.",
		"   ",
	})
	want := []string{"First paragraph.", "Second paragraph."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filterContentLines mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifyFailure(t *testing.T) {
	text := &fakeText{name: "openai"}
	svc, _, _, mailer := newTestService(t, text, func(o *Options) {
		o.Settings = fakeSettings{SettingEmailNotifications: "true"}
	})

	svc.NotifyFailure(errors.New("provider down"))
	if mailer.sent != 1 {
		t.Fatalf("sent = %d mails", mailer.sent)
	}
	if !strings.Contains(mailer.body, "provider down") {
		t.Errorf("body = %q", mailer.body)
	}
}
