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

type characterModel struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Description  string
	Traits       string `gorm:"type:text"`
	SystemPrompt string
	CreatorID    int64  `gorm:"index"`
	NSFW         bool   `gorm:"column:nsfw"`
	Visibility   string `gorm:"index"`
	ApprovedBy   int64
	RejectedBy   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (characterModel) TableName() string {
	return "characters"
}

type characterStore struct {
	db *gorm.DB
}

// NewCharacterStore returns a Postgres-backed character store.
func NewCharacterStore(db *gorm.DB) chat.CharacterStore {
	return &characterStore{db: db}
}

func (s *characterStore) Get(ctx context.Context, id string) (*types.Character, error) {
	var model characterModel
	err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return characterFromModel(model), nil
}

func (s *characterStore) Save(ctx context.Context, c *types.Character) error {
	model, err := characterToModel(c)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (s *characterStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&characterModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func (s *characterStore) ListByVisibility(ctx context.Context, v types.Visibility) ([]*types.Character, error) {
	var models []characterModel
	err := s.db.WithContext(ctx).
		Where("visibility = ?", string(v)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return charactersFromModels(models), nil
}

func (s *characterStore) ListByCreator(ctx context.Context, creatorID int64) ([]*types.Character, error) {
	var models []characterModel
	err := s.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return charactersFromModels(models), nil
}

func characterToModel(c *types.Character) (characterModel, error) {
	traits, err := json.Marshal(c.Traits)
	if err != nil {
		return characterModel{}, fmt.Errorf("failed to encode traits: %w", err)
	}
	return characterModel{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Traits:       string(traits),
		SystemPrompt: c.SystemPrompt,
		CreatorID:    c.CreatorID,
		NSFW:         c.NSFW,
		Visibility:   string(c.Visibility),
		ApprovedBy:   c.ApprovedBy,
		RejectedBy:   c.RejectedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}, nil
}

func characterFromModel(model characterModel) *types.Character {
	var traits map[string]int
	// Malformed trait data degrades to defaults rather than failing the load.
	_ = json.Unmarshal([]byte(model.Traits), &traits)
	return &types.Character{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		Traits:       traits,
		SystemPrompt: model.SystemPrompt,
		CreatorID:    model.CreatorID,
		NSFW:         model.NSFW,
		Visibility:   types.Visibility(model.Visibility),
		ApprovedBy:   model.ApprovedBy,
		RejectedBy:   model.RejectedBy,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func charactersFromModels(models []characterModel) []*types.Character {
	out := make([]*types.Character, 0, len(models))
	for _, m := range models {
		out = append(out, characterFromModel(m))
	}
	return out
}
