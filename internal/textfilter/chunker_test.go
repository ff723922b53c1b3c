package textfilter

import (
	"strings"
	"testing"
)

func TestSplitShortMessagePassthrough(t *testing.T) {
	got := Split("short reply", true)
	if len(got) != 1 || got[0] != "short reply" {
		t.Fatalf("expected single untouched chunk, got %v", got)
	}
}

func TestSplitPacksParagraphs(t *testing.T) {
	para := strings.Repeat("a", 1500)
	text := para + "\n\n" + para + "\n\n" + para
	got := Split(text, false)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if !strings.HasSuffix(got[0], contSuffixPlain) {
		t.Fatalf("first chunk missing continuation suffix: %q", got[0][len(got[0])-10:])
	}
	if !strings.HasPrefix(got[1], contPrefixPlain) {
		t.Fatalf("second chunk missing continuation prefix")
	}
	body0 := strings.TrimSuffix(got[0], contSuffixPlain)
	if len(body0) > ChunkLimit {
		t.Fatalf("chunk body exceeds ceiling: %d", len(body0))
	}
	rejoined := body0 + "\n\n" + strings.TrimPrefix(got[1], contPrefixPlain)
	if rejoined != text {
		t.Fatal("chunks do not reassemble into the original text")
	}
}

func TestSplitStyledMarkers(t *testing.T) {
	text := strings.Repeat("a", 3000) + "\n\n" + strings.Repeat("b", 3000)
	got := Split(text, true)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if !strings.HasSuffix(got[0], contSuffixStyled) {
		t.Fatal("first chunk missing styled suffix")
	}
	if !strings.HasPrefix(got[1], contPrefixStyled) {
		t.Fatal("second chunk missing styled prefix")
	}
}

func TestSplitHardSplitsOversizedParagraph(t *testing.T) {
	text := strings.Repeat("x", 9000)
	got := Split(text, false)
	if len(got) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(got))
	}
	mid := got[1]
	if !strings.HasPrefix(mid, contPrefixPlain) || !strings.HasSuffix(mid, contSuffixPlain) {
		t.Fatalf("middle chunk missing markers: %q", mid[:10])
	}
	var total int
	for i, c := range got {
		body := c
		if i > 0 {
			body = strings.TrimPrefix(body, contPrefixPlain)
		}
		if i < len(got)-1 {
			body = strings.TrimSuffix(body, contSuffixPlain)
		}
		if len(body) > ChunkLimit {
			t.Fatalf("chunk %d body exceeds ceiling: %d", i, len(body))
		}
		total += len(body)
	}
	if total != len(text) {
		t.Fatalf("expected bodies to cover %d bytes, got %d", len(text), total)
	}
}

func TestSplitBacksOffTrailingEscape(t *testing.T) {
	text := strings.Repeat("a", ChunkLimit-1) + `\.` + strings.Repeat("b", 200)
	got := Split(text, true)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	body0 := strings.TrimSuffix(got[0], contSuffixStyled)
	if strings.HasSuffix(body0, `\`) {
		t.Fatal("first chunk body ends inside an escape sequence")
	}
}
