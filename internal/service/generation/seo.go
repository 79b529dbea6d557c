package generation

import "strings"

// SEOMetadata is the structured output of the combined title+SEO call.
type SEOMetadata struct {
	MetaDescription   string
	PrimaryKeyword    string
	SecondaryKeywords []string
	SocialExcerpt     string
}

// Empty reports whether no field was populated.
func (m SEOMetadata) Empty() bool {
	return m.MetaDescription == "" && m.PrimaryKeyword == "" &&
		len(m.SecondaryKeywords) == 0 && m.SocialExcerpt == ""
}

type parsePhase int

const (
	phaseSeeking parsePhase = iota
	phaseTitle
	phaseSEO
	phaseDone
)

// ParseTitleAndSEO scans structured response lines for the [TITLE] and
// [SEO] sections. Only the first non-empty line after [TITLE] becomes the
// title; labeled SEO lines fill the metadata; [END] stops the scan. Lines
// outside any section are ignored, so both fields degrade to zero values
// on malformed input.
func ParseTitleAndSEO(lines []string) (string, SEOMetadata) {
	var (
		title string
		meta  SEOMetadata
		phase = phaseSeeking
	)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		switch line {
		case "[TITLE]":
			phase = phaseTitle
			continue
		case "[SEO]":
			phase = phaseSEO
			continue
		case "[END]":
			phase = phaseDone
		}
		if phase == phaseDone {
			break
		}
		if line == "" {
			continue
		}

		switch phase {
		case phaseTitle:
			if title == "" {
				title = strings.Trim(line, "\"'`")
			}
		case phaseSEO:
			switch {
			case strings.HasPrefix(line, "Meta Description:"):
				meta.MetaDescription = strings.TrimSpace(strings.TrimPrefix(line, "Meta Description:"))
			case strings.HasPrefix(line, "Primary Keyword:"):
				meta.PrimaryKeyword = strings.TrimSpace(strings.TrimPrefix(line, "Primary Keyword:"))
			case strings.HasPrefix(line, "Secondary Keywords:"):
				meta.SecondaryKeywords = splitKeywords(strings.TrimPrefix(line, "Secondary Keywords:"))
			case strings.HasPrefix(line, "Social Excerpt:"):
				meta.SocialExcerpt = strings.TrimSpace(strings.TrimPrefix(line, "Social Excerpt:"))
			}
		}
	}

	return title, meta
}

// MetaFieldsFor maps metadata onto the field names of the configured SEO
// integration. Unknown integrations get no fields.
func MetaFieldsFor(integration string, meta SEOMetadata) map[string]string {
	if integration != "yoast" || meta.Empty() {
		return nil
	}

	fields := map[string]string{}
	if meta.MetaDescription != "" {
		fields["_yoast_wpseo_metadesc"] = meta.MetaDescription
	}
	if meta.PrimaryKeyword != "" {
		fields["_yoast_wpseo_focuskw"] = meta.PrimaryKeyword
	}
	if len(meta.SecondaryKeywords) > 0 {
		fields["_yoast_wpseo_metakeywords"] = strings.Join(meta.SecondaryKeywords, ", ")
	}
	if meta.SocialExcerpt != "" {
		fields["_yoast_wpseo_opengraph-description"] = meta.SocialExcerpt
	}
	return fields
}

func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
