package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kireev-dev/personabot/internal/chat"
	"github.com/kireev-dev/personabot/internal/types"
)

type stateModel struct {
	UserID            int64  `gorm:"primaryKey"`
	CharacterID       string `gorm:"primaryKey"`
	Mood              float64
	ConversationCount int
	PersonalityStats  string `gorm:"type:text"`
	History           string `gorm:"type:text"`
	NSFWOverride      *bool  `gorm:"column:nsfw_override"`
	UpdatedAt         time.Time
}

func (stateModel) TableName() string {
	return "character_states"
}

type stateStore struct {
	db *gorm.DB
}

// NewStateStore returns a Postgres-backed conversation state store.
func NewStateStore(db *gorm.DB) chat.StateStore {
	return &stateStore{db: db}
}

func (s *stateStore) Get(ctx context.Context, userID int64, characterID string) (*types.CharacterState, error) {
	var model stateModel
	err := s.db.WithContext(ctx).
		First(&model, "user_id = ? AND character_id = ?", userID, characterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character state: %w", err)
	}
	return stateFromModel(model), nil
}

func (s *stateStore) Save(ctx context.Context, state *types.CharacterState) error {
	model, err := stateToModel(state)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "character_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save character state: %w", err)
	}
	return nil
}

func (s *stateStore) Delete(ctx context.Context, userID int64, characterID string) error {
	err := s.db.WithContext(ctx).
		Delete(&stateModel{}, "user_id = ? AND character_id = ?", userID, characterID).Error
	if err != nil {
		return fmt.Errorf("failed to delete character state: %w", err)
	}
	return nil
}

func stateToModel(state *types.CharacterState) (stateModel, error) {
	stats, err := json.Marshal(state.PersonalityStats)
	if err != nil {
		return stateModel{}, fmt.Errorf("failed to encode personality stats: %w", err)
	}
	history, err := json.Marshal(state.History)
	if err != nil {
		return stateModel{}, fmt.Errorf("failed to encode history: %w", err)
	}
	return stateModel{
		UserID:            state.UserID,
		CharacterID:       state.CharacterID,
		Mood:              state.Mood,
		ConversationCount: state.ConversationCount,
		PersonalityStats:  string(stats),
		History:           string(history),
		NSFWOverride:      state.NSFWOverride,
		UpdatedAt:         state.UpdatedAt,
	}, nil
}

func stateFromModel(model stateModel) *types.CharacterState {
	// Corrupt serialized fields degrade to fresh defaults so one bad row
	// never blocks a conversation.
	state := types.NewCharacterState(model.UserID, model.CharacterID)
	state.Mood = model.Mood
	state.ConversationCount = model.ConversationCount
	state.NSFWOverride = model.NSFWOverride
	state.UpdatedAt = model.UpdatedAt

	var stats map[string]int
	if err := json.Unmarshal([]byte(model.PersonalityStats), &stats); err == nil && len(stats) > 0 {
		state.PersonalityStats = stats
	}
	var history []types.ChatMessage
	if err := json.Unmarshal([]byte(model.History), &history); err == nil {
		state.History = history
	}
	return state
}
