// Package emotion scores conversation exchanges: it detects emotional
// keywords, derives a bounded mood delta, classifies user message style,
// and maps mood values to labels for presentation.
package emotion

import (
	"math/rand"
	"strings"
	"time"
)

// PerturbRange bounds the random fluctuation added to each mood delta.
const PerturbRange = 0.2

// DeltaInput carries one exchange plus the character's personality traits.
type DeltaInput struct {
	UserMessage string
	Reply       string
	Traits      map[string]int
}

// Scorer computes mood deltas with a small random fluctuation layered on
// the deterministic core.
type Scorer struct {
	rng *rand.Rand
}

// NewScorer returns a scorer seeded from the current time.
func NewScorer() *Scorer {
	return &Scorer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Delta scores one exchange including the random fluctuation.
func (s *Scorer) Delta(in DeltaInput) float64 {
	perturb := (s.rng.Float64()*2 - 1) * PerturbRange
	return MoodDelta(in, perturb)
}

// MoodDelta is the deterministic scoring core. perturb is the caller's
// fluctuation term so the function stays reproducible in tests. The result
// is clamped to [-1, 1].
func MoodDelta(in DeltaInput, perturb float64) float64 {
	user := detectUser(in.UserMessage)
	reply := detectReply(in.Reply)

	var pos, neg int
	for _, c := range positiveCategories {
		pos += reply[c]
	}
	for _, c := range negativeCategories {
		neg += reply[c]
	}
	sentiment := (float64(pos)*traitFactor(in.Traits, "agreeableness") -
		float64(neg)*traitFactor(in.Traits, "neuroticism")) * 0.15

	romantic := reply["love"] + reply["affection"] + reply["flirting"]
	receptivity := 1.0
	if v, ok := in.Traits["openness"]; ok {
		receptivity += float64(v-5) * 0.1
	}
	if v, ok := in.Traits["extraversion"]; ok {
		receptivity += float64(v-5) * 0.1
	}
	romanticBoost := float64(romantic) * 0.3 * receptivity

	var relationship float64
	if user["love"]+user["affection"] > 0 && romantic > 0 {
		relationship += float64(min(user["love"]+user["affection"], 3)) * 0.2
	}
	if user["trust"]+user["vulnerability"] > 0 &&
		reply["trust"]+reply["comfort"]+reply["connection"] > 0 {
		relationship += float64(min(user["trust"]+user["vulnerability"], 2)) * 0.15
	}
	if user["happiness"] > 0 && reply["happiness"] > 0 {
		relationship += float64(min(user["happiness"], 2)) * 0.1
	}
	if user["sadness"] > 0 && reply["comfort"]+reply["connection"]+reply["affection"] > 0 {
		relationship += float64(min(user["sadness"], 2)) * 0.1
	}
	if user["admiration"] > 0 && reply["pride"]+reply["gratitude"]+reply["happiness"] > 0 {
		relationship += float64(min(user["admiration"], 2)) * 0.1
	}

	return clamp(sentiment+romanticBoost+relationship+perturb, -1, 1)
}

// detectReply counts one hit per keyword present in the reply.
func detectReply(text string) map[string]int {
	lower := strings.ToLower(text)
	hits := make(map[string]int)
	for category, keywords := range emotionKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits[category]++
			}
		}
	}
	return hits
}

// detectUser weighs keywords in the user's own message twice as heavily.
func detectUser(text string) map[string]int {
	lower := strings.ToLower(text)
	hits := make(map[string]int)
	for category, keywords := range emotionKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits[category] += 2
			}
		}
	}
	return hits
}

func traitFactor(traits map[string]int, name string) float64 {
	if v, ok := traits[name]; ok {
		return float64(v) / 5.0
	}
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
