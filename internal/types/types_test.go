package types

import (
	"fmt"
	"testing"
)

func TestAppendKeepsHistoryBounded(t *testing.T) {
	state := NewCharacterState(1, "nami")
	for i := 0; i < HistoryLimit*3; i++ {
		state.Append(RoleUser, fmt.Sprintf("message %d", i))
	}
	if len(state.History) != HistoryLimit {
		t.Fatalf("expected %d entries, got %d", HistoryLimit, len(state.History))
	}
	if state.History[0].Content != fmt.Sprintf("message %d", HistoryLimit*2) {
		t.Fatalf("expected oldest entries dropped, got %q", state.History[0].Content)
	}
	if state.History[HistoryLimit-1].Content != fmt.Sprintf("message %d", HistoryLimit*3-1) {
		t.Fatalf("expected newest entry retained, got %q", state.History[HistoryLimit-1].Content)
	}
}

func TestEffectiveNSFWOverride(t *testing.T) {
	preset := &Character{ID: "nami", NSFW: false}
	custom := &Character{ID: "custom_x", CreatorID: 42, NSFW: false}

	state := NewCharacterState(1, "nami")
	if state.EffectiveNSFW(preset) {
		t.Fatalf("expected catalog flag to apply without override")
	}

	on := true
	state.NSFWOverride = &on
	if !state.EffectiveNSFW(preset) {
		t.Fatalf("expected preset override to apply")
	}
	if state.EffectiveNSFW(custom) {
		t.Fatalf("expected override to be ignored for custom characters")
	}
}

func TestTraitDefault(t *testing.T) {
	c := &Character{Traits: map[string]int{"agreeableness": 9}}
	if got := c.Trait("agreeableness", 5); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := c.Trait("neuroticism", 5); got != 5 {
		t.Fatalf("expected default 5, got %d", got)
	}
}
