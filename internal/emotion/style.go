package emotion

import (
	"regexp"
	"strings"
)

// Style classifies how the user wrote their message so replies can mirror
// its length and energy.
type Style struct {
	WordCount   int
	SingleWord  bool
	Brief       bool
	Concise     bool
	Detailed    bool
	Verbose     bool
	HasQuestion bool
	Greeting    bool
	Excited     bool
	Sexual      bool
}

var greetingRe = regexp.MustCompile(`(?i)\b(hi|hello|hey|sup|yo|howdy|what's up)\b`)

// sexualTerms flag adult content in the user's message. Only consulted when
// the conversation allows it.
var sexualTerms = []string{
	"kiss", "touch", "naked", "sex", "bed", "body", "desire", "intimate", "undress",
}

// AnalyzeStyle classifies one user message. nsfw enables the adult-content
// flag.
func AnalyzeStyle(message string, nsfw bool) Style {
	words := strings.Fields(message)
	s := Style{WordCount: len(words)}
	switch {
	case len(words) == 1:
		s.SingleWord = true
		s.Brief = true
	case len(words) <= 5:
		s.Brief = true
	case len(words) <= 15:
		s.Concise = true
	case len(words) <= 30:
		s.Detailed = true
	default:
		s.Verbose = true
	}
	s.HasQuestion = strings.Contains(message, "?")
	s.Greeting = greetingRe.MatchString(message)
	s.Excited = isExcited(message)
	if nsfw {
		lower := strings.ToLower(message)
		for _, term := range sexualTerms {
			if strings.Contains(lower, term) {
				s.Sexual = true
				break
			}
		}
	}
	return s
}

// isExcited reports shouting: all caps with at least one letter and enough
// length to rule out acronyms.
func isExcited(message string) bool {
	if len(message) <= 3 {
		return false
	}
	if message != strings.ToUpper(message) {
		return false
	}
	return message != strings.ToLower(message)
}
