package emotion

import "testing"

func TestAnalyzeStyleGreeting(t *testing.T) {
	s := AnalyzeStyle("hi", false)
	if s.WordCount != 1 {
		t.Fatalf("expected word count 1, got %d", s.WordCount)
	}
	if !s.SingleWord || !s.Brief || !s.Greeting {
		t.Fatalf("expected single-word brief greeting, got %+v", s)
	}
	if s.HasQuestion || s.Excited {
		t.Fatalf("unexpected flags set: %+v", s)
	}
}

func TestAnalyzeStyleLengthBuckets(t *testing.T) {
	cases := []struct {
		message string
		check   func(Style) bool
		name    string
	}{
		{"one two three four", func(s Style) bool { return s.Brief && !s.Concise }, "brief"},
		{"one two three four five six seven", func(s Style) bool { return s.Concise }, "concise"},
		{"a a a a a a a a a a a a a a a a a a a a", func(s Style) bool { return s.Detailed }, "detailed"},
		{"b b b b b b b b b b b b b b b b b b b b b b b b b b b b b b b b", func(s Style) bool { return s.Verbose }, "verbose"},
	}
	for _, c := range cases {
		if s := AnalyzeStyle(c.message, false); !c.check(s) {
			t.Fatalf("%s: unexpected style %+v", c.name, s)
		}
	}
}

func TestAnalyzeStyleExcitedAndQuestion(t *testing.T) {
	s := AnalyzeStyle("WHERE ARE YOU?", false)
	if !s.Excited {
		t.Fatalf("expected excited, got %+v", s)
	}
	if !s.HasQuestion {
		t.Fatalf("expected question, got %+v", s)
	}
	if AnalyzeStyle("ok?", false).Excited {
		t.Fatal("short message should not be excited")
	}
}

func TestAnalyzeStyleSexualGated(t *testing.T) {
	if !AnalyzeStyle("come to bed", true).Sexual {
		t.Fatal("expected sexual flag with nsfw enabled")
	}
	if AnalyzeStyle("come to bed", false).Sexual {
		t.Fatal("expected sexual flag suppressed without nsfw")
	}
}
