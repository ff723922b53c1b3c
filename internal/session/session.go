// Package session tracks per-user conversational state: the selected
// character and any in-progress character creation flow.
package session

import "context"

// Session is one user's transient state between messages.
type Session struct {
	SelectedCharacter string         `json:"selected_character,omitempty"`
	Creation          *CreationState `json:"creation,omitempty"`
}

// Store keeps sessions keyed by user ID. A missing session is not an
// error: Get returns (nil, nil).
type Store interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Put(ctx context.Context, userID int64, s *Session) error
	Delete(ctx context.Context, userID int64) error
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.Creation != nil {
		c := *s.Creation
		if c.Traits != nil {
			traits := make(map[string]int, len(c.Traits))
			for k, v := range c.Traits {
				traits[k] = v
			}
			c.Traits = traits
		}
		out.Creation = &c
	}
	return &out
}
