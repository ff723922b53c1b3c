package textfilter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// reservedChars are the characters the rich-text dialect requires escaped
// outside of styled spans.
const reservedChars = "_*[]()~`>#+-=|{}.!"

// soundPatterns match emotional sound tokens that are rendered with
// strike-through styling.
var soundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(a+h+)\b`),
	regexp.MustCompile(`(?i)\b(o+h+)\b`),
	regexp.MustCompile(`(?i)\b(h+m+)\b`),
	regexp.MustCompile(`(?i)\b(m+m+)\b`),
	regexp.MustCompile(`(?i)\b(u+m+)\b`),
	regexp.MustCompile(`(?i)\b(h+e+h+)\b`),
	regexp.MustCompile(`(?i)\b(h+a+h+a+)\b`),
	regexp.MustCompile(`(?i)\b(h+e+h+e+)\b`),
	regexp.MustCompile(`(?i)\b(o+o+h+)\b`),
	regexp.MustCompile(`(?i)\b(w+o+w+)\b`),
}

// sexualSoundPatterns are only styled when the conversation allows adult
// content.
var sexualSoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(m+m+m+)\b`),
	regexp.MustCompile(`(?i)\b(a+h+n+)\b`),
	regexp.MustCompile(`(?i)\b(n+g+h+)\b`),
}

type spanStyle int

const (
	styleEmphasis spanStyle = iota
	styleStrike
)

type styledSpan struct {
	start, end int
	content    string
	style      spanStyle
}

// Render rebuilds cleaned text in the rich-text dialect. Explicit *...*
// spans become italic, emotional sound tokens become strike-through, and
// everything in between is escaped. Returns an error when a span's content
// cannot be embedded safely; callers should fall back to plain text.
func Render(text string, nsfw bool) (string, error) {
	spans := collectSpans(text, nsfw)
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		if err := checkSpanContent(sp.content); err != nil {
			return "", err
		}
		b.WriteString(Escape(text[last:sp.start]))
		switch sp.style {
		case styleEmphasis:
			b.WriteString("_" + sp.content + "_")
		case styleStrike:
			b.WriteString("~" + sp.content + "~")
		}
		last = sp.end
	}
	b.WriteString(Escape(text[last:]))
	return b.String(), nil
}

// collectSpans gathers candidate spans sorted by start offset, dropping any
// that overlap an earlier one.
func collectSpans(text string, nsfw bool) []styledSpan {
	var spans []styledSpan
	for _, m := range emphasisBlockRe.FindAllStringIndex(text, -1) {
		spans = append(spans, styledSpan{m[0], m[1], text[m[0]+1 : m[1]-1], styleEmphasis})
	}
	patterns := soundPatterns
	if nsfw {
		patterns = append(append([]*regexp.Regexp{}, patterns...), sexualSoundPatterns...)
	}
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatchIndex(text, -1) {
			spans = append(spans, styledSpan{m[2], m[3], text[m[2]:m[3]], styleStrike})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})
	var kept []styledSpan
	last := -1
	for _, sp := range spans {
		if sp.start < last {
			continue
		}
		kept = append(kept, sp)
		last = sp.end
	}
	return kept
}

func checkSpanContent(content string) error {
	if content == "" {
		return fmt.Errorf("empty styled span")
	}
	if strings.ContainsAny(content, "_~*`\\\n") {
		return fmt.Errorf("styled span contains reserved characters: %q", content)
	}
	return nil
}

// Escape backslash-escapes every reserved character.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 && strings.ContainsRune(reservedChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unescape inverts Render on its own output: escapes are removed, italic
// spans turn back into *...* emphasis, and strike-through markers are
// dropped. Used when a styled send fails and the text must go out plain.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && strings.IndexByte(reservedChars, s[i+1]) >= 0:
			b.WriteByte(s[i+1])
			i++
		case c == '_':
			end := strings.IndexByte(s[i+1:], '_')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString("*" + s[i+1:i+1+end] + "*")
			i += end + 1
		case c == '~':
			end := strings.IndexByte(s[i+1:], '~')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString(s[i+1 : i+1+end])
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
