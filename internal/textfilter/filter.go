// Package textfilter sanitizes raw model completions for delivery: it strips
// disclaimers and meta-commentary, normalizes emphasis markup, renders the
// messenger rich-text dialect, and splits long replies into sendable chunks.
package textfilter

import "strings"

// Clean strips name prefixes, disclaimers, and meta-commentary from a raw
// completion and normalizes the whitespace the removals leave behind.
func Clean(raw, characterName string) string {
	text := raw
	for _, r := range namePrefixRules(characterName) {
		text = r.Apply(text)
	}
	for _, r := range disclaimerRules {
		text = r.Apply(text)
	}
	for _, r := range whitespaceRules {
		text = r.Apply(text)
	}
	return strings.TrimSpace(text)
}
