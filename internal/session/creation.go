package session

import (
	"fmt"
	"strconv"
	"strings"
)

// CreationStep identifies where the character creation flow is.
type CreationStep int

const (
	StepName CreationStep = iota
	StepDescription
	StepNSFW
	StepTraits
)

// TraitOrder is the order trait values are collected in.
var TraitOrder = []string{"friendliness", "humor", "intelligence", "empathy", "energy"}

const (
	promptName        = "Let's create your character! What's their name? (send /cancel to stop)"
	promptDescription = "Great! Now describe your character: their background, personality, how they talk."
	promptNSFW        = "Should adult content be allowed with this character? (yes/no)"
	promptTraits      = "Finally, rate their traits 1-10 in this order, separated by commas:\nfriendliness, humor, intelligence, empathy, energy\nExample: 7, 5, 9, 6, 8"
	promptCancelled   = "Character creation cancelled."
)

// CreationState is an in-progress character creation flow.
type CreationState struct {
	Step        CreationStep   `json:"step"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	NSFW        bool           `json:"nsfw,omitempty"`
	Traits      map[string]int `json:"traits,omitempty"`
}

// StepResult is the outcome of feeding one input into the flow.
type StepResult struct {
	Prompt    string
	Done      bool
	Cancelled bool
}

// NewCreation starts the flow and returns the first prompt.
func NewCreation() (*CreationState, string) {
	return &CreationState{Step: StepName}, promptName
}

// Advance feeds one user input into the flow. /cancel aborts at any step.
func (c *CreationState) Advance(input string) StepResult {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "/cancel") {
		return StepResult{Cancelled: true, Prompt: promptCancelled}
	}
	switch c.Step {
	case StepName:
		if input == "" {
			return StepResult{Prompt: promptName}
		}
		c.Name = input
		c.Step = StepDescription
		return StepResult{Prompt: promptDescription}
	case StepDescription:
		if input == "" {
			return StepResult{Prompt: promptDescription}
		}
		c.Description = input
		c.Step = StepNSFW
		return StepResult{Prompt: promptNSFW}
	case StepNSFW:
		v, ok := parseYesNo(input)
		if !ok {
			return StepResult{Prompt: "Please answer yes or no.\n" + promptNSFW}
		}
		c.NSFW = v
		c.Step = StepTraits
		return StepResult{Prompt: promptTraits}
	case StepTraits:
		traits, err := parseTraits(input)
		if err != nil {
			return StepResult{Prompt: err.Error() + "\n" + promptTraits}
		}
		c.Traits = traits
		return StepResult{Done: true}
	}
	return StepResult{Prompt: promptName}
}

func parseYesNo(input string) (bool, bool) {
	switch strings.ToLower(input) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	}
	return false, false
}

func parseTraits(input string) (map[string]int, error) {
	parts := strings.Split(input, ",")
	if len(parts) != len(TraitOrder) {
		return nil, fmt.Errorf("expected %d values", len(TraitOrder))
	}
	traits := make(map[string]int, len(TraitOrder))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 1 || v > 10 {
			return nil, fmt.Errorf("values must be whole numbers from 1 to 10")
		}
		traits[TraitOrder[i]] = v
	}
	return traits, nil
}
