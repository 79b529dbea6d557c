// Package tokens approximates token costs and resolves per-model
// context-window ceilings for generation budgeting.
package tokens

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultContextWindow is the conservative ceiling assumed for models
// missing from the context-window table.
const DefaultContextWindow = 4096

// MinResponseTokens is the floor applied to every generation budget so a
// call always requests a non-trivial response allowance.
const MinResponseTokens = 100

var whitespaceRegex = regexp.MustCompile(`\s+`)

// contextWindows maps known model identifiers to their maximum combined
// prompt+response token count. Keep this table current with provider
// release notes; unknown models fall back to DefaultContextWindow.
var contextWindows = map[string]int{
	"gpt-3.5-turbo":              16385,
	"gpt-4-turbo":                128000,
	"gpt-4-turbo-2024-04-09":     128000,
	"gpt-4":                      8192,
	"gpt-4.5-preview":            128000,
	"gpt-4.5-preview-2025-02-27": 128000,
	"gpt-4o":                     128000,
	"gpt-4o-2024-05-13":          128000,
	"gpt-4o-2024-08-06":          128000,
	"gpt-4o-2024-11-20":          128000,
	"gpt-4o-mini":                128000,
	"gpt-4o-mini-2024-07-18":     128000,
	// Short Claude names kept for backward compatibility
	"claude-3-haiku":             200000,
	"claude-3-sonnet":            200000,
	"claude-3-opus":              200000,
	"claude-3-haiku-20240307":    200000,
	"claude-3-sonnet-20240229":   200000,
	"claude-3-opus-20240229":     200000,
	"claude-3.5-haiku-20241022":  200000,
	"claude-3.5-sonnet-20241022": 200000,
	"claude-3.7-sonnet-20250219": 200000,
	// Gemini models
	"gemini-pro":               32768,
	"gemini-1.5-flash":         1048576,
	"gemini-1.5-flash-8b":      1048576,
	"gemini-1.5-pro":           2097152,
	"gemini-2.0-flash":         1048576,
	"gemini-2.0-flash-lite":    1048576,
	"gemini-2.0-pro-exp-02-05": 2048576,
}

// Estimate approximates the number of tokens in text. Whitespace runs are
// collapsed before counting, and roughly 4 characters make one token.
func Estimate(text string) int {
	text = strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

// ContextWindow returns the maximum context size for a model, or
// DefaultContextWindow when the model is not in the table.
func ContextWindow(model string) int {
	if window, ok := contextWindows[model]; ok {
		return window
	}
	return DefaultContextWindow
}

// Available computes the response token budget for a call: the requested
// ceiling capped by the model's context window, minus the estimated prompt
// cost, never below MinResponseTokens.
func Available(prompt string, requestedTokens int, model string) int {
	maxTokens := requestedTokens
	if window := ContextWindow(model); window < maxTokens {
		maxTokens = window
	}

	available := maxTokens - Estimate(prompt)
	if available < MinResponseTokens {
		return MinResponseTokens
	}
	return available
}
