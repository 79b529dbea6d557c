package generation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTitleAndSEO(t *testing.T) {
	title, meta := ParseTitleAndSEO([]string{
		"[TITLE]",
		"Brewing Better Coffee at Home",
		"[SEO]",
		"Meta Description: Learn how to brew cafe-grade coffee.",
		"Primary Keyword: coffee brewing",
		"Secondary Keywords: espresso, grinder, pour over",
		"Social Excerpt: Your kitchen, barista-grade.",
		"[END]",
	})

	if title != "Brewing Better Coffee at Home" {
		t.Errorf("title = %q", title)
	}

	want := SEOMetadata{
		MetaDescription:   "Learn how to brew cafe-grade coffee.",
		PrimaryKeyword:    "coffee brewing",
		SecondaryKeywords: []string{"espresso", "grinder", "pour over"},
		SocialExcerpt:     "Your kitchen, barista-grade.",
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTitleAndSEOOnlyFirstTitleLine(t *testing.T) {
	title, _ := ParseTitleAndSEO([]string{
		"[TITLE]",
		"First Title",
		"Second line that should be ignored",
		"[SEO]",
		"[END]",
	})
	if title != "First Title" {
		t.Errorf("title = %q, want first title line only", title)
	}
}

func TestParseTitleAndSEOTrimsQuotes(t *testing.T) {
	title, _ := ParseTitleAndSEO([]string{"[TITLE]", `"Quoted Title"`, "[END]"})
	if title != "Quoted Title" {
		t.Errorf("title = %q, want quotes trimmed", title)
	}
}

func TestParseTitleAndSEOStopsAtEnd(t *testing.T) {
	_, meta := ParseTitleAndSEO([]string{
		"[SEO]",
		"Meta Description: kept",
		"[END]",
		"Primary Keyword: ignored after end",
	})
	if meta.MetaDescription != "kept" {
		t.Errorf("MetaDescription = %q", meta.MetaDescription)
	}
	if meta.PrimaryKeyword != "" {
		t.Errorf("PrimaryKeyword parsed past [END]: %q", meta.PrimaryKeyword)
	}
}

func TestParseTitleAndSEOMalformedInput(t *testing.T) {
	title, meta := ParseTitleAndSEO([]string{"just some prose", "with no markers at all"})
	if title != "" {
		t.Errorf("title = %q, want empty", title)
	}
	if !meta.Empty() {
		t.Errorf("metadata not empty: %+v", meta)
	}
}

func TestMetaFieldsForYoast(t *testing.T) {
	meta := SEOMetadata{
		MetaDescription:   "desc",
		PrimaryKeyword:    "go",
		SecondaryKeywords: []string{"golang", "testing"},
		SocialExcerpt:     "excerpt",
	}

	want := map[string]string{
		"_yoast_wpseo_metadesc":              "desc",
		"_yoast_wpseo_focuskw":               "go",
		"_yoast_wpseo_metakeywords":          "golang, testing",
		"_yoast_wpseo_opengraph-description": "excerpt",
	}
	if diff := cmp.Diff(want, MetaFieldsFor("yoast", meta)); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	if got := MetaFieldsFor("none", meta); got != nil {
		t.Errorf("expected no fields for inactive integration, got %v", got)
	}
	if got := MetaFieldsFor("yoast", SEOMetadata{}); got != nil {
		t.Errorf("expected no fields for empty metadata, got %v", got)
	}
}
