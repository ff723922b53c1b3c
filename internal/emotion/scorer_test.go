package emotion

import (
	"math"
	"testing"
)

func TestMoodDeltaPositiveSentiment(t *testing.T) {
	in := DeltaInput{
		UserMessage: "ok",
		Reply:       "I'm so happy and glad you came.",
		Traits:      map[string]int{"agreeableness": 9},
	}
	got := MoodDelta(in, 0)
	if math.Abs(got-0.54) > 1e-9 {
		t.Fatalf("expected delta 0.54, got %v", got)
	}
}

func TestMoodDeltaClampsPositive(t *testing.T) {
	in := DeltaInput{
		UserMessage: "ok",
		Reply:       "I love you, my sweet darling, kiss hug",
	}
	if got := MoodDelta(in, 0); got != 1.0 {
		t.Fatalf("expected delta clamped to 1.0, got %v", got)
	}
}

func TestMoodDeltaClampsNegative(t *testing.T) {
	in := DeltaInput{
		UserMessage: "ok",
		Reply:       "I hate you, angry furious rage, you make me mad",
		Traits:      map[string]int{"neuroticism": 10},
	}
	if got := MoodDelta(in, 0); got != -1.0 {
		t.Fatalf("expected delta clamped to -1.0, got %v", got)
	}
}

func TestMoodDeltaTrustBoost(t *testing.T) {
	in := DeltaInput{
		UserMessage: "I trust you with this",
		Reply:       "You're safe with me",
	}
	got := MoodDelta(in, 0)
	if math.Abs(got-0.45) > 1e-9 {
		t.Fatalf("expected delta 0.45, got %v", got)
	}
}

func TestMoodDeltaPerturbApplied(t *testing.T) {
	in := DeltaInput{UserMessage: "ok", Reply: "fine"}
	if got := MoodDelta(in, 0.2); math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("expected perturbation to pass through, got %v", got)
	}
}

func TestScorerDeltaWithinBounds(t *testing.T) {
	s := NewScorer()
	in := DeltaInput{UserMessage: "hello", Reply: "hello back"}
	for i := 0; i < 50; i++ {
		got := s.Delta(in)
		if got < -1 || got > 1 {
			t.Fatalf("delta out of bounds: %v", got)
		}
	}
}
