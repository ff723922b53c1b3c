package textfilter

import (
	"regexp"
	"strings"
)

// Rule is one substitution pass of the pipeline. Rules are applied in
// declaration order and each must be idempotent: reapplying a rule to its
// own output is a no-op.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs the rule once.
func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

// disclaimerRules remove meta-commentary and AI-disclaimer language from a
// raw completion. Bracket and parenthetical removal run before the
// sentence-level passes so those operate on already-simplified text.
var disclaimerRules = []Rule{
	// Square-bracket notes and metadata: [Note: ...], [Character's mood: ...].
	{regexp.MustCompile(`\[[^\]]*\]`), ""},

	// Parenthetical asides that read like internal notes.
	{regexp.MustCompile(`(?is)\((?:note|ooc|meta|as per|as an ai|in line with|at this point|also,|my |i |based on|maintain|keeping|continuing|character|user|model|emotion|relationship|instruction)[^)]*\)`), ""},

	// Structural scaffolding some models emit around the reply.
	{regexp.MustCompile(`(?i)user'?s message:[^\n]*`), ""},
	{regexp.MustCompile(`(?i)emotion detected:[^\n]*`), ""},
	{regexp.MustCompile(`(?i)response:`), ""},

	// Sentences that self-identify as an AI or language model.
	{regexp.MustCompile(`(?i)[^.!?\n]*(?:i'?m an ai|i am an ai|as an ai|i'?m a language model|i am a language model|i'?m an artificial|i am an artificial|ai assistant|language model|artificial intelligence)[^.!?\n]*[.!?]`), ""},

	// Sentences that claim an inability to act or feel.
	{regexp.MustCompile(`(?i)[^.!?\n]*(?:i cannot|i can'?t|i am unable to|i don'?t have the ability|i don'?t have the capability|i'?m just a|i'?m only a|i'?m not physically|i don'?t have a physical|i don'?t have an actual|not able to|unable to|prevented from|doesn'?t allow me to)[^.!?\n]*[.!?]`), ""},

	// Sentences that deny having emotions or feelings.
	{regexp.MustCompile(`(?i)[^.!?\n]*(?:i do not have [^.!?\n]*(?:emotions|feelings)|i don'?t have [^.!?\n]*(?:emotions|feelings)|can'?t [^.!?\n]*feel|not (?:real|physical|an actual|a real person)|don'?t have a (?:real|physical|actual))[^.!?\n]*[.!?]`), ""},

	// Sentences about capabilities, limitations, or being built.
	{regexp.MustCompile(`(?i)[^.!?\n]*(?:capabilities|limitations|constraints|restricted|programmed|designed to|trained to)[^.!?\n]*[.!?]`), ""},

	// Sentences that remind the user this is roleplay or fiction.
	{regexp.MustCompile(`(?i)[^.!?\n]*(?:this is roleplay|i'?m roleplaying|i'?m playing a character|in this roleplay|this is fiction|as a fictional character|simulating|pretending to be|virtual|digital|text-based)[^.!?\n]*[.!?]`), ""},

	// Clarification leads that precede a disclaimer.
	{regexp.MustCompile(`(?i)[^.!?\n]*(?:in reality|in truth|the truth is|to be clear|to clarify|let me clarify|i should note|i must clarify|i need to mention|need to remind you that|please remember that|important to note that)[^.!?\n]*[.!?]`), ""},

	// Formulaic filler the model falls back on.
	{regexp.MustCompile(`(?i)(?:let'?s continue exploring our connection|let'?s see where our fantasies take us|let'?s keep our conversation going)[^.!?\n]*[.!?]`), ""},
	{regexp.MustCompile(`(?i)(?:i love your \w+!|you'?re so \w+!|shall we\?)`), ""},
}

// whitespaceRules tidy up the gaps left by removals. They run last.
var whitespaceRules = []Rule{
	{regexp.MustCompile(`[ \t]{2,}`), " "},
	{regexp.MustCompile(`[ \t]+\n`), "\n"},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// namePrefixRules strips "Name:" prefixes the model sometimes adds, at the
// start of the text or after newlines.
func namePrefixRules(name string) []Rule {
	var rules []Rule
	name = strings.TrimSpace(name)
	if name != "" {
		esc := regexp.QuoteMeta(name)
		rules = append(rules, Rule{regexp.MustCompile(`(?i)(^|\n+)` + esc + `\s*:\s*`), "$1"})
		if first, _, ok := strings.Cut(name, " "); ok && first != "" {
			escFirst := regexp.QuoteMeta(first)
			rules = append(rules, Rule{regexp.MustCompile(`(?i)(^|\n+)` + escFirst + `\s*:\s*`), "$1"})
		}
	}
	// Generic "Some Name: " prefix at the very start.
	rules = append(rules, Rule{regexp.MustCompile(`^[A-Za-z][A-Za-z ]*: `), ""})
	return rules
}
