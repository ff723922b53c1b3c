// Package chat orchestrates conversations: it routes user messages through
// the prompt composer, completion provider, text filter pipeline, and
// emotion scorer, and persists the resulting state.
package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kireev-dev/personabot/internal/catalog"
	"github.com/kireev-dev/personabot/internal/emotion"
	"github.com/kireev-dev/personabot/internal/llm"
	"github.com/kireev-dev/personabot/internal/prompt"
	"github.com/kireev-dev/personabot/internal/session"
	"github.com/kireev-dev/personabot/internal/textfilter"
	"github.com/kireev-dev/personabot/internal/types"
)

const (
	msgNoCharacter   = "You haven't selected a character yet! Use /characters to see who's available."
	msgCharacterGone = "The selected character no longer exists. Use /characters to pick another one."
)

// Deps are the collaborators a Service needs.
type Deps struct {
	Catalog    *catalog.Pool
	Characters CharacterStore
	States     StateStore
	Sessions   session.Store
	Provider   llm.Provider
	Gateway    Gateway
	Scorer     *emotion.Scorer
	Logger     *zap.Logger
}

// Options tune completion requests and admin access.
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int64
	AdminID     int64
}

// Service handles all user-facing chat operations.
type Service struct {
	catalog    *catalog.Pool
	characters CharacterStore
	states     StateStore
	sessions   session.Store
	provider   llm.Provider
	gateway    Gateway
	scorer     *emotion.Scorer
	logger     *zap.Logger
	locks      *keyedMutex
	opts       Options
}

// NewService wires a Service from its collaborators.
func NewService(deps Deps, opts Options) *Service {
	return &Service{
		catalog:    deps.Catalog,
		characters: deps.Characters,
		states:     deps.States,
		sessions:   deps.Sessions,
		provider:   deps.Provider,
		gateway:    deps.Gateway,
		scorer:     deps.Scorer,
		logger:     deps.Logger,
		locks:      newKeyedMutex(),
		opts:       opts,
	}
}

// HandleMessage processes one inbound user message end to end.
func (s *Service) HandleMessage(ctx context.Context, userID int64, text string) error {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		sess = &session.Session{}
	}
	if sess.Creation != nil {
		return s.continueCreation(ctx, userID, sess, text)
	}
	if sess.SelectedCharacter == "" {
		return s.gateway.SendPlain(ctx, userID, msgNoCharacter)
	}

	char, err := s.lookupCharacter(ctx, sess.SelectedCharacter)
	if err != nil {
		return err
	}
	if char == nil {
		return s.gateway.SendPlain(ctx, userID, msgCharacterGone)
	}

	unlock := s.locks.lock(conversationKey(userID, char.ID))
	defer unlock()

	state, err := s.states.Get(ctx, userID, char.ID)
	if err != nil {
		return fmt.Errorf("failed to load character state: %w", err)
	}
	if state == nil {
		state = types.NewCharacterState(userID, char.ID)
	}

	nsfw := state.EffectiveNSFW(char)
	style := emotion.AnalyzeStyle(text, nsfw)

	// Persist the user turn before calling the provider so a failed
	// completion never loses the user's message.
	state.Append(types.RoleUser, text)
	state.ConversationCount++
	state.UpdatedAt = time.Now()
	if err := s.states.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save character state: %w", err)
	}

	system := prompt.Compose(prompt.ComposeInput{
		Character:         char,
		NSFW:              nsfw,
		Mood:              state.Mood,
		ConversationCount: state.ConversationCount,
		Style:             style,
		Stats:             state.PersonalityStats,
	})

	resp, err := s.provider.Complete(ctx, llm.Request{
		SystemPrompt: system,
		Messages:     state.History,
		Temperature:  s.opts.Temperature,
		MaxTokens:    s.opts.MaxTokens,
		TopP:         s.opts.TopP,
		SafetyFilter: !nsfw,
	})
	if err != nil {
		s.logger.Error("completion failed",
			zap.Int64("user_id", userID),
			zap.String("character_id", char.ID),
			zap.Error(err))
		return s.gateway.SendPlain(ctx, userID,
			fmt.Sprintf("Sorry, I couldn't generate a response from %s right now. Please try again later.", char.Name))
	}

	reply := textfilter.Clean(resp.Text, char.Name)
	reply = textfilter.WrapEmotionTags(reply)

	delta := s.scorer.Delta(emotion.DeltaInput{
		UserMessage: text,
		Reply:       reply,
		Traits:      char.Traits,
	})
	state.Mood = clampMood(state.Mood + delta)
	state.Append(types.RoleAssistant, reply)
	state.UpdatedAt = time.Now()
	if err := s.states.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save character state: %w", err)
	}

	s.deliver(ctx, userID, reply, nsfw)
	return nil
}

// deliver renders and sends the reply. Send failures are logged per chunk;
// one failed chunk never blocks the rest of the reply.
func (s *Service) deliver(ctx context.Context, userID int64, reply string, nsfw bool) {
	styled, err := textfilter.Render(reply, nsfw)
	if err != nil {
		s.logger.Warn("falling back to plain text",
			zap.Int64("user_id", userID), zap.Error(err))
		for _, chunk := range textfilter.Split(reply, false) {
			if err := s.gateway.SendPlain(ctx, userID, chunk); err != nil {
				s.logger.Error("failed to send chunk",
					zap.Int64("user_id", userID), zap.Error(err))
			}
		}
		return
	}
	for _, chunk := range textfilter.Split(styled, true) {
		if err := s.gateway.SendMarkdown(ctx, userID, chunk); err != nil {
			s.logger.Warn("styled send failed, retrying plain",
				zap.Int64("user_id", userID), zap.Error(err))
			if err := s.gateway.SendPlain(ctx, userID, textfilter.Unescape(chunk)); err != nil {
				s.logger.Error("failed to send chunk",
					zap.Int64("user_id", userID), zap.Error(err))
			}
		}
	}
}

// lookupCharacter resolves an ID against the preset catalog first, then the
// custom character store.
func (s *Service) lookupCharacter(ctx context.Context, id string) (*types.Character, error) {
	if char := s.catalog.Get(id); char != nil {
		return char, nil
	}
	char, err := s.characters.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up character: %w", err)
	}
	return char, nil
}

func conversationKey(userID int64, characterID string) string {
	return fmt.Sprintf("%d:%s", userID, characterID)
}

func clampMood(v float64) float64 {
	if v < types.MoodMin {
		return types.MoodMin
	}
	if v > types.MoodMax {
		return types.MoodMax
	}
	return v
}
