// Package prompt composes system prompts from character identity, mood
// state, and message style. Composition is deterministic: the same input
// always yields the same prompt.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kireev-dev/personabot/internal/emotion"
	"github.com/kireev-dev/personabot/internal/types"
)

// ComposeInput is everything the composer needs for one exchange.
type ComposeInput struct {
	Character         *types.Character
	NSFW              bool
	Mood              float64
	ConversationCount int
	Style             emotion.Style
	Stats             map[string]int
}

// Compose builds the full system prompt for one completion request.
func Compose(in ComposeInput) string {
	var b strings.Builder

	if in.Character.SystemPrompt != "" {
		b.WriteString(in.Character.SystemPrompt)
	} else {
		b.WriteString(identityBlock(in.Character))
	}
	b.WriteString("\n\n")
	b.WriteString(formattingRules)
	b.WriteString("\n\n")
	b.WriteString(emotionalGuidance)
	b.WriteString("\n\n")
	if in.NSFW {
		b.WriteString(nsfwPolicy)
	} else {
		b.WriteString(sfwPolicy)
	}
	b.WriteString("\n\n")
	b.WriteString(mirroringRules)
	b.WriteString("\n\n")
	b.WriteString(traitsBlock(in))
	b.WriteString("\n")
	b.WriteString(stateBlock(in))
	b.WriteString("\n")
	if in.NSFW {
		b.WriteString(guidelinesNSFW)
	} else {
		b.WriteString(guidelinesSFW)
	}
	if block := personalityBlock(in.Character.Traits); block != "" {
		b.WriteString("\n\n")
		b.WriteString(block)
	}
	return b.String()
}

// CreationSystemPrompt builds the stored system prompt for a user-created
// character from its description.
func CreationSystemPrompt(name, description string) string {
	return fmt.Sprintf("You are %s. %s\n\n%s", name, description, identityRules)
}

func identityBlock(c *types.Character) string {
	return fmt.Sprintf("You are %s. %s\n\n%s", c.Name, c.Description, identityRules)
}

// traitsBlock lists trait scores in deterministic order.
func traitsBlock(in ComposeInput) string {
	var b strings.Builder
	b.WriteString("Personality traits:\n")
	if len(in.Character.Traits) > 0 {
		names := make([]string, 0, len(in.Character.Traits))
		for name := range in.Character.Traits {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %d/10\n", capitalize(name), in.Character.Traits[name])
		}
		return b.String()
	}
	for _, name := range []string{"friendliness", "humor", "intelligence", "empathy", "energy"} {
		fmt.Fprintf(&b, "- %s: %d/10\n", capitalize(name), in.Stats[name])
	}
	return b.String()
}

func stateBlock(in ComposeInput) string {
	var b strings.Builder
	b.WriteString("Current state:\n")
	fmt.Fprintf(&b, "- Mood: %s\n", emotion.Label(in.Mood))
	fmt.Fprintf(&b, "- Relationship status: %s\n", emotion.RelationshipStatus(in.Mood, in.ConversationCount))
	fmt.Fprintf(&b, "- Conversation count: %d\n", in.ConversationCount)
	b.WriteString(styleBlock(in.Style))
	return b.String()
}

// styleBlock describes the user's message and how to mirror it.
func styleBlock(s emotion.Style) string {
	var b strings.Builder
	b.WriteString("\nUser messaging style:\n")
	switch {
	case s.Brief:
		b.WriteString("- User sent a very short message (5 words or less)\n")
	case s.Concise:
		b.WriteString("- User sent a short message (6-15 words)\n")
	case s.Detailed:
		b.WriteString("- User sent a medium-length message (16-30 words)\n")
	case s.Verbose:
		b.WriteString("- User sent a long message (more than 30 words)\n")
	}
	if s.SingleWord {
		b.WriteString("- User sent only one word\n")
	}
	if s.HasQuestion {
		b.WriteString("- User asked a question\n")
	}
	if s.Greeting {
		b.WriteString("- User sent a greeting\n")
	}
	if s.Excited {
		b.WriteString("- User message shows excitement or emphasis (all caps)\n")
	}

	b.WriteString("\nResponse style instructions:\n")
	switch {
	case s.SingleWord:
		b.WriteString("- Match the user's brevity with an extremely concise response, even a word or two\n")
	case s.Brief:
		b.WriteString("- Keep your response short and to the point, no paragraphs\n")
	case s.Concise:
		b.WriteString("- Keep your response conversational and brief, one or two short sentences\n")
	case s.Detailed:
		b.WriteString("- Provide a thoughtful response with some detail but stay concise\n")
	case s.Verbose:
		b.WriteString("- You can respond with more detail, but stay focused\n")
	}
	if s.HasQuestion {
		b.WriteString("- Answer the user's question directly\n")
	}
	if s.Greeting {
		b.WriteString("- Respond with a greeting that matches your character's personality\n")
	}
	if s.Excited {
		b.WriteString("- Match the user's enthusiasm in your response\n")
	}
	return b.String()
}

// personalityBlock surfaces only the traits extreme enough to shape
// emotional responses.
func personalityBlock(traits map[string]int) string {
	if len(traits) == 0 {
		return ""
	}
	type guidance struct {
		trait string
		high  string
		low   string
	}
	table := []guidance{
		{"extraversion",
			"You are very expressive with emotions and respond to feelings with enthusiasm and energy.",
			"You are reserved with emotional expressions and share feelings quietly, after taking time to process."},
		{"neuroticism",
			"You experience emotions intensely and may show vulnerability or quickly shifting feelings.",
			"You are emotionally stable and respond to emotional content with calm confidence."},
		{"agreeableness",
			"You are naturally warm and supportive and respond to feelings with kindness and validation.",
			"You can be blunt or skeptical and take time to trust the sincerity of others' feelings."},
		{"conscientiousness",
			"You are thoughtful and measured, showing feelings in consistent ways rather than impulsive bursts.",
			"You are spontaneous with emotional expressions and respond in the moment without overthinking."},
		{"openness",
			"You embrace new emotional territory and engage readily with unconventional or imaginative feelings.",
			"You prefer familiar emotional ground and approach new kinds of intimacy cautiously."},
	}
	var lines []string
	for _, g := range table {
		v, ok := traits[g.trait]
		if !ok {
			continue
		}
		if v >= 8 {
			lines = append(lines, "- "+g.high)
		} else if v <= 3 {
			lines = append(lines, "- "+g.low)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "How your personality shapes emotional responses:\n" + strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
