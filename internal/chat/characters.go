package chat

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kireev-dev/personabot/internal/emotion"
	"github.com/kireev-dev/personabot/internal/prompt"
	"github.com/kireev-dev/personabot/internal/session"
	"github.com/kireev-dev/personabot/internal/types"
)

// ListCharacters returns every character the user can select: presets,
// approved public characters, and the user's own creations.
func (s *Service) ListCharacters(ctx context.Context, userID int64) ([]*types.Character, error) {
	chars := s.catalog.All()
	seen := make(map[string]bool, len(chars))
	for _, c := range chars {
		seen[c.ID] = true
	}

	public, err := s.characters.ListByVisibility(ctx, types.VisibilityPublic)
	if err != nil {
		return nil, err
	}
	own, err := s.characters.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range append(public, own...) {
		if !seen[c.ID] {
			seen[c.ID] = true
			chars = append(chars, c)
		}
	}
	return chars, nil
}

// Select makes characterID the user's conversation partner.
func (s *Service) Select(ctx context.Context, userID int64, characterID string) (string, error) {
	char, err := s.lookupCharacter(ctx, characterID)
	if err != nil {
		return "", err
	}
	if char == nil || !s.selectable(char, userID) {
		return "That character isn't available. Use /characters to see the list.", nil
	}

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		sess = &session.Session{}
	}
	sess.SelectedCharacter = char.ID
	sess.Creation = nil
	if err := s.sessions.Put(ctx, userID, sess); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return fmt.Sprintf("You are now chatting with %s. Say hi!", char.Name), nil
}

// selectable reports whether userID may chat with char.
func (s *Service) selectable(c *types.Character, userID int64) bool {
	if c.IsPreset() {
		return true
	}
	return c.Visibility == types.VisibilityPublic || c.CreatorID == userID
}

// Reset wipes the conversation with the selected character.
func (s *Service) Reset(ctx context.Context, userID int64) (string, error) {
	char, err := s.selectedCharacter(ctx, userID)
	if err != nil || char == nil {
		return msgNoCharacter, err
	}

	unlock := s.locks.lock(conversationKey(userID, char.ID))
	defer unlock()

	if err := s.states.Delete(ctx, userID, char.ID); err != nil {
		return "", fmt.Errorf("failed to reset conversation: %w", err)
	}
	return fmt.Sprintf("Your conversation with %s has been reset. They won't remember a thing.", char.Name), nil
}

// ToggleNSFW flips adult mode for the selected character and resets the
// conversation, since the prompt contract changes completely.
func (s *Service) ToggleNSFW(ctx context.Context, userID int64) (string, error) {
	char, err := s.selectedCharacter(ctx, userID)
	if err != nil || char == nil {
		return msgNoCharacter, err
	}

	unlock := s.locks.lock(conversationKey(userID, char.ID))
	defer unlock()

	state, err := s.states.Get(ctx, userID, char.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load character state: %w", err)
	}
	if state == nil {
		state = types.NewCharacterState(userID, char.ID)
	}

	var enabled bool
	if char.IsPreset() {
		enabled = !state.EffectiveNSFW(char)
		state.NSFWOverride = &enabled
	} else {
		if char.CreatorID != userID {
			return "Only the creator can change this character's adult setting.", nil
		}
		char.NSFW = !char.NSFW
		char.UpdatedAt = time.Now()
		if err := s.characters.Save(ctx, char); err != nil {
			return "", fmt.Errorf("failed to save character: %w", err)
		}
		enabled = char.NSFW
	}

	state.History = nil
	state.ConversationCount = 0
	state.Mood = types.MoodNeutral
	state.UpdatedAt = time.Now()
	if err := s.states.Save(ctx, state); err != nil {
		return "", fmt.Errorf("failed to save character state: %w", err)
	}

	mode := "disabled"
	if enabled {
		mode = "enabled"
	}
	return fmt.Sprintf("Adult mode is now %s for %s. The conversation has been reset.", mode, char.Name), nil
}

// StartCreation begins the guided character creation flow.
func (s *Service) StartCreation(ctx context.Context, userID int64) (string, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		sess = &session.Session{}
	}
	creation, opening := session.NewCreation()
	sess.Creation = creation
	if err := s.sessions.Put(ctx, userID, sess); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return opening, nil
}

// continueCreation feeds one message into an in-progress creation flow.
func (s *Service) continueCreation(ctx context.Context, userID int64, sess *session.Session, input string) error {
	result := sess.Creation.Advance(input)
	switch {
	case result.Cancelled:
		sess.Creation = nil
		if err := s.sessions.Put(ctx, userID, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return s.gateway.SendPlain(ctx, userID, result.Prompt)
	case result.Done:
		char, err := s.createCharacter(ctx, userID, sess.Creation)
		if err != nil {
			return err
		}
		sess.Creation = nil
		sess.SelectedCharacter = char.ID
		if err := s.sessions.Put(ctx, userID, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return s.gateway.SendPlain(ctx, userID,
			fmt.Sprintf("%s is ready! You're chatting with them now. Use /share to submit them for the public list.", char.Name))
	default:
		if err := s.sessions.Put(ctx, userID, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return s.gateway.SendPlain(ctx, userID, result.Prompt)
	}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func (s *Service) createCharacter(ctx context.Context, userID int64, c *session.CreationState) (*types.Character, error) {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(c.Name), "_"), "_")
	if slug == "" {
		slug = "character"
	}
	now := time.Now()
	char := &types.Character{
		ID:           fmt.Sprintf("custom_%s_%s", slug, uuid.NewString()[:8]),
		Name:         c.Name,
		Description:  c.Description,
		Traits:       c.Traits,
		SystemPrompt: prompt.CreationSystemPrompt(c.Name, c.Description),
		CreatorID:    userID,
		NSFW:         c.NSFW,
		Visibility:   types.VisibilityPrivate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.characters.Save(ctx, char); err != nil {
		return nil, fmt.Errorf("failed to save character: %w", err)
	}
	return char, nil
}

// DeleteCharacter removes one of the user's own creations.
func (s *Service) DeleteCharacter(ctx context.Context, userID int64, characterID string) (string, error) {
	char, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return "", err
	}
	if char == nil || char.CreatorID != userID {
		return "You can only delete characters you created.", nil
	}

	unlock := s.locks.lock(conversationKey(userID, characterID))
	defer unlock()

	if err := s.characters.Delete(ctx, characterID); err != nil {
		return "", fmt.Errorf("failed to delete character: %w", err)
	}
	if err := s.states.Delete(ctx, userID, characterID); err != nil {
		return "", fmt.Errorf("failed to delete character state: %w", err)
	}

	sess, err := s.sessions.Get(ctx, userID)
	if err == nil && sess != nil && sess.SelectedCharacter == characterID {
		sess.SelectedCharacter = ""
		if err := s.sessions.Put(ctx, userID, sess); err != nil {
			return "", fmt.Errorf("failed to save session: %w", err)
		}
	}
	return fmt.Sprintf("%s has been deleted.", char.Name), nil
}

// RequestPublic submits one of the user's characters for moderation.
func (s *Service) RequestPublic(ctx context.Context, userID int64, characterID string) (string, error) {
	char, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return "", err
	}
	if char == nil || char.CreatorID != userID {
		return "You can only share characters you created.", nil
	}
	if char.Visibility == types.VisibilityPublic {
		return fmt.Sprintf("%s is already public.", char.Name), nil
	}
	char.Visibility = types.VisibilityPending
	char.UpdatedAt = time.Now()
	if err := s.characters.Save(ctx, char); err != nil {
		return "", fmt.Errorf("failed to save character: %w", err)
	}
	return fmt.Sprintf("%s has been submitted for review.", char.Name), nil
}

// ListPending returns characters awaiting moderation. Admin only.
func (s *Service) ListPending(ctx context.Context, requesterID int64) ([]*types.Character, error) {
	if !s.isAdmin(requesterID) {
		return nil, fmt.Errorf("not allowed")
	}
	return s.characters.ListByVisibility(ctx, types.VisibilityPending)
}

// Approve publishes a pending character. Admin only.
func (s *Service) Approve(ctx context.Context, requesterID int64, characterID string) (string, error) {
	return s.moderate(ctx, requesterID, characterID, true)
}

// Reject returns a pending character to private. Admin only.
func (s *Service) Reject(ctx context.Context, requesterID int64, characterID string) (string, error) {
	return s.moderate(ctx, requesterID, characterID, false)
}

func (s *Service) moderate(ctx context.Context, requesterID int64, characterID string, approve bool) (string, error) {
	if !s.isAdmin(requesterID) {
		return "You are not allowed to moderate characters.", nil
	}
	char, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return "", err
	}
	if char == nil || char.Visibility != types.VisibilityPending {
		return "That character isn't awaiting review.", nil
	}
	if approve {
		char.Visibility = types.VisibilityPublic
		char.ApprovedBy = requesterID
	} else {
		char.Visibility = types.VisibilityPrivate
		char.RejectedBy = requesterID
	}
	char.UpdatedAt = time.Now()
	if err := s.characters.Save(ctx, char); err != nil {
		return "", fmt.Errorf("failed to save character: %w", err)
	}
	if approve {
		return fmt.Sprintf("%s is now public.", char.Name), nil
	}
	return fmt.Sprintf("%s has been rejected.", char.Name), nil
}

func (s *Service) isAdmin(userID int64) bool {
	return s.opts.AdminID != 0 && userID == s.opts.AdminID
}

// CurrentStatus renders the mood, relationship, and trait overview for the
// selected character.
func (s *Service) CurrentStatus(ctx context.Context, userID int64) (string, error) {
	char, err := s.selectedCharacter(ctx, userID)
	if err != nil || char == nil {
		return msgNoCharacter, err
	}
	state, err := s.states.Get(ctx, userID, char.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load character state: %w", err)
	}
	if state == nil {
		state = types.NewCharacterState(userID, char.ID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stats for %s\n\n", char.Name)
	fmt.Fprintf(&b, "Mood: %s\n%s\n", emotion.LabelEmoji(state.Mood), emotion.StatBar(int(state.Mood), 10))
	fmt.Fprintf(&b, "Relationship: %s\n", emotion.RelationshipStatus(state.Mood, state.ConversationCount))
	fmt.Fprintf(&b, "Conversations: %d\n", state.ConversationCount)
	mode := "off"
	if state.EffectiveNSFW(char) {
		mode = "on"
	}
	fmt.Fprintf(&b, "Adult mode: %s\n", mode)

	b.WriteString("\nPersonality:\n")
	if len(char.Traits) > 0 {
		for _, name := range sortedTraitNames(char.Traits) {
			v := char.Traits[name]
			fmt.Fprintf(&b, "%s %s %d/10\n", emotion.StatBar(v, 10), name, v)
		}
	} else {
		for _, name := range session.TraitOrder {
			v := state.PersonalityStats[name]
			fmt.Fprintf(&b, "%s %s %d/10\n", emotion.StatBar(v, 10), name, v)
		}
	}
	return b.String(), nil
}

func sortedTraitNames(traits map[string]int) []string {
	names := make([]string, 0, len(traits))
	for name := range traits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selectedCharacter resolves the user's current selection, or nil when
// nothing is selected.
func (s *Service) selectedCharacter(ctx context.Context, userID int64) (*types.Character, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil || sess.SelectedCharacter == "" {
		return nil, nil
	}
	return s.lookupCharacter(ctx, sess.SelectedCharacter)
}
