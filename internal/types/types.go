package types

import "time"

// Visibility is the sharing state of a custom character.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPending Visibility = "pending"
	VisibilityPublic  Visibility = "public"
)

// Character is a chat persona, either preset or user-created.
type Character struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description" yaml:"description"`
	Traits       map[string]int `json:"traits" yaml:"traits"`
	SystemPrompt string         `json:"system_prompt" yaml:"system_prompt"`
	CreatorID    int64          `json:"creator_id" yaml:"-"`
	NSFW         bool           `json:"nsfw" yaml:"nsfw"`
	Visibility   Visibility     `json:"visibility" yaml:"-"`
	ApprovedBy   int64          `json:"approved_by,omitempty" yaml:"-"`
	RejectedBy   int64          `json:"rejected_by,omitempty" yaml:"-"`
	CreatedAt    time.Time      `json:"created_at" yaml:"-"`
	UpdatedAt    time.Time      `json:"updated_at" yaml:"-"`
}

// IsPreset reports whether the character ships with the catalog.
func (c *Character) IsPreset() bool {
	return c.CreatorID == 0
}

// Trait returns the named trait score, or def when absent.
func (c *Character) Trait(name string, def int) int {
	if c == nil || c.Traits == nil {
		return def
	}
	if v, ok := c.Traits[name]; ok {
		return v
	}
	return def
}

// Chat roles used in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one conversation history entry.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryLimit bounds per-pair conversation history at rest.
const HistoryLimit = 30

// Mood bounds.
const (
	MoodMin     = 1.0
	MoodMax     = 10.0
	MoodNeutral = 5.0
)

// CharacterState is the mutable state of one user × character pair.
type CharacterState struct {
	UserID            int64          `json:"user_id"`
	CharacterID       string         `json:"character_id"`
	Mood              float64        `json:"mood"`
	ConversationCount int            `json:"conversation_count"`
	PersonalityStats  map[string]int `json:"personality_stats"`
	History           []ChatMessage  `json:"history"`
	// NSFWOverride is the per-user toggle for preset characters;
	// nil means the catalog flag applies.
	NSFWOverride *bool `json:"nsfw_override,omitempty"`
	UpdatedAt    time.Time
}

// NewCharacterState returns a fresh state with neutral defaults.
func NewCharacterState(userID int64, characterID string) *CharacterState {
	return &CharacterState{
		UserID:      userID,
		CharacterID: characterID,
		Mood:        MoodNeutral,
		PersonalityStats: map[string]int{
			"friendliness": 5,
			"humor":        5,
			"intelligence": 5,
			"empathy":      5,
			"energy":       5,
		},
	}
}

// Append adds a history entry, dropping the oldest past HistoryLimit.
func (s *CharacterState) Append(role, content string) {
	s.History = append(s.History, ChatMessage{Role: role, Content: content})
	if n := len(s.History); n > HistoryLimit {
		s.History = s.History[n-HistoryLimit:]
	}
}

// EffectiveNSFW resolves the per-user override against the character flag.
// Overrides only apply to preset characters; custom characters carry the
// flag on the record itself.
func (s *CharacterState) EffectiveNSFW(c *Character) bool {
	if s != nil && s.NSFWOverride != nil && c.IsPreset() {
		return *s.NSFWOverride
	}
	return c.NSFW
}
