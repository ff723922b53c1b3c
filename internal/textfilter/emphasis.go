package textfilter

import (
	"regexp"
	"sort"
	"strings"
)

// emotionTags are actions and sounds that should read as stage directions.
// Occurrences outside existing *...* spans get wrapped in asterisks.
var emotionTags = []string{
	"nods", "nods slowly", "shakes head", "tilts head",
	"blushes", "blushes slightly", "blushes deeply",
	"smiles", "smiles softly", "smiles warmly", "smirks", "grins",
	"laughs", "laughs softly", "giggles", "chuckles",
	"sighs", "sighs softly", "sighs deeply",
	"frowns", "pouts", "winks",
	"gasps", "yawns", "shrugs",
	"looks away", "looks down", "looks up", "glances away",
	"leans closer", "leans in", "leans back",
	"crosses arms", "raises eyebrow", "rolls eyes",
	"bites lip", "licks lips", "purrs",
	"stretches", "shivers", "trembles",
	"whispers", "murmurs", "hums",
	"waves", "claps", "fidgets",
}

// span of an existing *...* emphasis block.
var emphasisBlockRe = regexp.MustCompile(`\*[^*\n]+\*`)

// lineLeadRe wraps a single leading word on a line as an implied stage
// direction. Idempotent: a wrapped line starts with an asterisk.
var lineLeadRe = regexp.MustCompile(`(?m)^([A-Za-z]+)[ \t]+`)

var tagRe = buildTagPattern()

// buildTagPattern compiles one alternation over all tags, longest first so
// multi-word tags win over their single-word prefixes.
func buildTagPattern() *regexp.Regexp {
	tags := make([]string, len(emotionTags))
	copy(tags, emotionTags)
	sort.Slice(tags, func(i, j int) bool { return len(tags[i]) > len(tags[j]) })
	for i, t := range tags {
		tags[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(tags, "|") + `)\b`)
}

// WrapEmotionTags wraps bare emotion words in asterisks, leaving text inside
// existing emphasis spans untouched. Safe to apply repeatedly.
func WrapEmotionTags(text string) string {
	text = applyOutsideSpans(text, func(gap string) string {
		return tagRe.ReplaceAllString(gap, "*$1*")
	})
	return lineLeadRe.ReplaceAllString(text, "*$1* ")
}

// applyOutsideSpans runs fn over the stretches of text between existing
// emphasis spans, leaving the spans themselves intact.
func applyOutsideSpans(text string, fn func(string) string) string {
	spans := emphasisBlockRe.FindAllStringIndex(text, -1)
	if spans == nil {
		return fn(text)
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(fn(text[last:sp[0]]))
		b.WriteString(text[sp[0]:sp[1]])
		last = sp[1]
	}
	b.WriteString(fn(text[last:]))
	return b.String()
}
