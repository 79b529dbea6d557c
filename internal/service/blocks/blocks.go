// Package blocks parses raw generated text into a canonical block
// sequence and renders it as editor block markup.
package blocks

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Type discriminates block variants.
type Type string

const (
	TypeHeading   Type = "heading"
	TypeParagraph Type = "paragraph"
)

// Block is one canonical content unit: a level-2/3 heading or a
// paragraph. Ordering within a sequence is significant.
type Block struct {
	Type  Type
	Level int // 2 or 3, headings only
	Text  string
}

var (
	h2Regex  = regexp.MustCompile(`<h2[^>]*>(.*?)</h2>`)
	h3Regex  = regexp.MustCompile(`<h3[^>]*>(.*?)</h3>`)
	tagRegex = regexp.MustCompile(`<[^>]*>`)
)

// Parse converts raw output lines into blocks. Lines that are empty after
// trimming produce no block; heading tags win over paragraph treatment;
// all residual markup is stripped from block text.
func Parse(lines []string) []Block {
	var out []Block
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := h2Regex.FindStringSubmatch(line); m != nil {
			out = append(out, Block{Type: TypeHeading, Level: 2, Text: stripTags(m[1])})
			continue
		}
		if m := h3Regex.FindStringSubmatch(line); m != nil {
			out = append(out, Block{Type: TypeHeading, Level: 3, Text: stripTags(m[1])})
			continue
		}

		out = append(out, Block{Type: TypeParagraph, Text: stripTags(line)})
	}
	return out
}

// Render serializes blocks into block-editor markup, preserving order.
// Headings carry explicit level metadata; all text is HTML-escaped.
func Render(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Type {
		case TypeHeading:
			level := b.Level
			if level != 2 && level != 3 {
				level = 2
			}
			sb.WriteString(fmt.Sprintf(
				`<!-- wp:heading {"level":%d} --><h%d class="wp-block-heading">%s</h%d><!-- /wp:heading -->`,
				level, level, html.EscapeString(strings.TrimSpace(b.Text)), level))
		case TypeParagraph:
			sb.WriteString(fmt.Sprintf(
				`<!-- wp:paragraph --><p>%s</p><!-- /wp:paragraph -->`,
				html.EscapeString(strings.TrimSpace(b.Text))))
		}
	}
	return sb.String()
}

func stripTags(s string) string {
	return strings.TrimSpace(tagRegex.ReplaceAllString(s, ""))
}
