package chat

import (
	"context"

	"github.com/kireev-dev/personabot/internal/types"
)

// CharacterStore persists user-created characters. A missing character is
// not an error: Get returns (nil, nil).
type CharacterStore interface {
	Get(ctx context.Context, id string) (*types.Character, error)
	Save(ctx context.Context, c *types.Character) error
	Delete(ctx context.Context, id string) error
	ListByVisibility(ctx context.Context, v types.Visibility) ([]*types.Character, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]*types.Character, error)
}

// StateStore persists per user and character conversation state. A missing
// state is not an error: Get returns (nil, nil).
type StateStore interface {
	Get(ctx context.Context, userID int64, characterID string) (*types.CharacterState, error)
	Save(ctx context.Context, s *types.CharacterState) error
	Delete(ctx context.Context, userID int64, characterID string) error
}
