// Package catalog holds the preset character table, loaded once at start
// and never mutated afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kireev-dev/personabot/internal/types"
)

//go:embed presets.yaml
var presetsYAML []byte

type presetFile struct {
	Characters []*types.Character `yaml:"characters"`
}

// Pool is the immutable preset catalog.
type Pool struct {
	byID  map[string]*types.Character
	order []string
}

// NewPool parses the embedded preset table.
func NewPool() (*Pool, error) {
	var f presetFile
	if err := yaml.Unmarshal(presetsYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedded presets: %w", err)
	}
	p := &Pool{byID: make(map[string]*types.Character, len(f.Characters))}
	for _, c := range f.Characters {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("preset character missing id or name: %+v", c)
		}
		if _, dup := p.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate preset character id %q", c.ID)
		}
		c.Visibility = types.VisibilityPublic
		p.byID[c.ID] = c
		p.order = append(p.order, c.ID)
	}
	sort.Strings(p.order)
	return p, nil
}

// Get returns a copy of the preset with the given id, or nil.
// Copies keep callers from mutating the shared table.
func (p *Pool) Get(id string) *types.Character {
	c, ok := p.byID[id]
	if !ok {
		return nil
	}
	return copyCharacter(c)
}

// All returns copies of every preset, ordered by id.
func (p *Pool) All() []*types.Character {
	out := make([]*types.Character, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, copyCharacter(p.byID[id]))
	}
	return out
}

func copyCharacter(c *types.Character) *types.Character {
	dup := *c
	if c.Traits != nil {
		dup.Traits = make(map[string]int, len(c.Traits))
		for k, v := range c.Traits {
			dup.Traits[k] = v
		}
	}
	return &dup
}
