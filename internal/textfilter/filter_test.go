package textfilter

import "testing"

func TestCleanStripsDisclaimerSentences(t *testing.T) {
	got := Clean("I'm an AI assistant and don't have real feelings.", "Nami")
	if got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestCleanStripsNamePrefix(t *testing.T) {
	got := Clean("Nami: Hello there!", "Nami")
	if got != "Hello there!" {
		t.Fatalf("expected %q, got %q", "Hello there!", got)
	}
}

func TestCleanStripsFirstNamePrefix(t *testing.T) {
	got := Clean("Nico: Interesting question.", "Nico Robin")
	if got != "Interesting question." {
		t.Fatalf("expected %q, got %q", "Interesting question.", got)
	}
}

func TestCleanRemovesBracketNotes(t *testing.T) {
	got := Clean("Hello [Note: mood increases] sailor.", "Nami")
	if got != "Hello sailor." {
		t.Fatalf("expected %q, got %q", "Hello sailor.", got)
	}
}

func TestCleanRemovesParentheticalAsides(t *testing.T) {
	got := Clean("Of course! (Note to self: stay in character) What next?", "Nami")
	if got != "Of course! What next?" {
		t.Fatalf("expected %q, got %q", "Of course! What next?", got)
	}
}

func TestCleanKeepsOrdinaryText(t *testing.T) {
	in := "The weather looks great today.\n\nWant to go sailing?"
	if got := Clean(in, "Nami"); got != in {
		t.Fatalf("expected input unchanged, got %q", got)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Nami: As an AI, I can't feel the wind. But the map says north!",
		"Hello [mood: +1] there. To clarify, this is roleplay.",
		"Plain text survives.\n\n\n\nWith collapsed gaps.",
	}
	for _, in := range inputs {
		once := Clean(in, "Nami")
		twice := Clean(once, "Nami")
		if once != twice {
			t.Fatalf("clean not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("So,  I was thinking.\n\n\n\nAnyway.", "Nami")
	if got != "So, I was thinking.\n\nAnyway." {
		t.Fatalf("unexpected whitespace normalization: %q", got)
	}
}
