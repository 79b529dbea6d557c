// Package prompts builds provider-agnostic prompt text for titles, SEO
// metadata, article bodies, and featured images.
package prompts

import (
	"fmt"
	"strings"
)

// Token budgets for the short structured calls. These responses are small
// by design, so a fixed ceiling is enough.
const (
	TitleAndSEOTokens = 200
	TitleTokens       = 50
)

// toneInstructions maps tones to writing-style instructions. Unknown tones
// (including "custom", whose free text is stored but not interpolated)
// fall back to the default entry.
var toneInstructions = map[Tone]string{
	ToneFunny:    "Write in a humorous and entertaining style, using clever wordplay and pop culture references where appropriate. Keep the tone light and engaging while still being informative.",
	ToneBusiness: "Maintain a professional and authoritative tone, focusing on clear, actionable information and industry insights.",
	ToneAcademic: "Write in a scholarly tone with well-researched information, clear arguments, and proper citations where relevant.",
	ToneEpic:     "Use dramatic and powerful language to create an engaging narrative, making even simple topics sound grand and exciting.",
	TonePersonal: "Write in a conversational, relatable tone as if sharing experiences with a friend, while maintaining professionalism.",
	ToneDefault:  "Balance professionalism with accessibility, creating engaging content that informs and entertains.",
}

const structureChecklist = `Create a comprehensive article that includes:
        - An engaging <h1> title that includes key terms naturally
        - A compelling introduction that hooks the reader
        - Well-organized main sections with <h2> headings
        - Subsections using <h3> headings where appropriate for detailed breakdowns
        - A meta description (max 160 characters) summarizing the article for SEO
        - 3-5 focus keywords for the article
        - Relevant examples and references
        - A strong conclusion that summarizes key points`

const seoFormatClause = `Additionally, provide the following SEO elements separated by [SEO] tags:
            - A compelling meta description (max 160 characters)
            - Primary keyword
            - Secondary keywords (2-3)
            - Social media excerpt (max 200 characters)

            Format the SEO section exactly like this:
            [SEO]
            Meta Description: Your meta description here
            Primary Keyword: Your primary keyword
            Secondary Keywords: keyword1, keyword2, keyword3
            Social Excerpt: Your social media excerpt here
            [SEO]`

// Builder creates prompts for the generation pipeline. Site identity is
// fixed at construction; everything else arrives per call.
type Builder struct {
	SiteName        string
	SiteDescription string
}

// NewBuilder creates a prompt builder for a site.
func NewBuilder(siteName, siteDescription string) *Builder {
	return &Builder{SiteName: siteName, SiteDescription: siteDescription}
}

// BuildContentPrompt assembles the article-body prompt. Parts are joined
// with blank lines in a fixed order; optional clauses are skipped when
// their inputs are empty. The char limit is advisory text only, never
// enforced by truncation here.
func (b *Builder) BuildContentPrompt(in ContentInput) string {
	parts := []string{
		fmt.Sprintf("You are an expert content writer for %s, a website focused on %s", b.SiteName, b.SiteDescription),
		toneInstruction(in.Tone),
		structureChecklist,
	}

	if len(in.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Focus on these main topics and keywords: %s. Integrate them naturally throughout the content.",
			strings.Join(in.Keywords, ", ")))
	}

	if in.SEOIntegration != "" && in.SEOIntegration != "none" {
		parts = append(parts, seoFormatClause)
	}

	if len(in.CategoryNames) > 0 {
		parts = append(parts, fmt.Sprintf(
			"This content belongs in the following categories: %s. Ensure the content aligns with these themes.",
			strings.Join(in.CategoryNames, ", ")))
	}

	parts = append(parts, fmt.Sprintf(`Format requirements:
		- Use HTML formatting
		- Structure content with <h1> for the main title only
		- Keep the total content under %d tokens
		- Ensure the content is SEO-optimized with natural keyword placement
		- Break up text into readable paragraphs
		- Use engaging subheadings for each main section`, in.CharLimit))

	return strings.Join(parts, "\n\n")
}

// BuildTitleAndSEOPrompt requests a single structured response containing
// a [TITLE] block and a labeled [SEO] block, terminated by [END].
func (b *Builder) BuildTitleAndSEOPrompt(keywords []string) string {
	return "Create a blog post title and SEO metadata for a post about: " + strings.Join(keywords, ", ") + "\n\n" +
		`Format the response exactly as follows:
    [TITLE]
    Your H1 title here
    [SEO]
    Meta Description: (max 160 chars)
    Primary Keyword: main keyword
    Secondary Keywords: keyword1, keyword2, keyword3
    Social Excerpt: (max 200 chars)
    [END]`
}

// BuildTitlePrompt requests only a catchy title.
func (b *Builder) BuildTitlePrompt(keywords []string) string {
	return "Create a catchy blog post title about: " + strings.Join(keywords, ", ")
}

// BuildImagePrompt joins the keyword clause, an optional category clause,
// and a fixed style clause with period-space separators.
func (b *Builder) BuildImagePrompt(keywords, categoryNames []string) string {
	var parts []string

	if len(keywords) > 0 {
		parts = append(parts, strings.Join(keywords, ", "))
	}
	if len(categoryNames) > 0 {
		parts = append(parts, "Related to: "+strings.Join(categoryNames, ", "))
	}
	parts = append(parts, "Create a high-quality, professional image suitable for a blog post")

	return strings.Join(parts, ". ")
}

func toneInstruction(tone Tone) string {
	if instruction, ok := toneInstructions[tone]; ok {
		return instruction
	}
	return toneInstructions[ToneDefault]
}
