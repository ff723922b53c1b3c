package textfilter

import (
	"strings"
	"unicode/utf8"
)

// ChunkLimit is the per-message ceiling, kept below the transport's 4096
// hard limit so continuation markers never push a chunk over.
const ChunkLimit = 4000

// Continuation markers, in styled (pre-escaped) and plain form.
const (
	contSuffixStyled = "\n\n\\.\\.\\."
	contPrefixStyled = "\\.\\.\\.\n\n"
	contSuffixPlain  = "\n\n..."
	contPrefixPlain  = "...\n\n"
)

// Split packs text into chunks no longer than ChunkLimit, preferring
// paragraph boundaries. Non-final chunks get a trailing continuation
// marker and non-first chunks a leading one; styled selects the
// pre-escaped marker form. The "\n\n" between paragraphs that land in
// different chunks is not kept in either chunk; the markers carry their
// own blank lines, so stripping them and rejoining with "\n\n" restores
// the original text.
func Split(text string, styled bool) []string {
	if len(text) <= ChunkLimit {
		return []string{text}
	}
	bodies := packParagraphs(text)
	prefix, suffix := contPrefixPlain, contSuffixPlain
	if styled {
		prefix, suffix = contPrefixStyled, contSuffixStyled
	}
	chunks := make([]string, len(bodies))
	for i, b := range bodies {
		if i > 0 {
			b = prefix + b
		}
		if i < len(bodies)-1 {
			b += suffix
		}
		chunks[i] = b
	}
	return chunks
}

// packParagraphs splits on blank lines and greedily packs paragraphs into
// bodies of at most ChunkLimit bytes. A single paragraph over the limit is
// hard-split at a rune boundary, backing off a trailing escape backslash so
// styled text never splits mid-escape.
func packParagraphs(text string) []string {
	var bodies []string
	cur := ""
	for _, p := range strings.Split(text, "\n\n") {
		for len(p) > ChunkLimit {
			if cur != "" {
				bodies = append(bodies, cur)
				cur = ""
			}
			cut := splitPoint(p)
			bodies = append(bodies, p[:cut])
			p = p[cut:]
		}
		switch {
		case cur == "":
			cur = p
		case len(cur)+2+len(p) <= ChunkLimit:
			cur += "\n\n" + p
		default:
			bodies = append(bodies, cur)
			cur = p
		}
	}
	if cur != "" {
		bodies = append(bodies, cur)
	}
	return bodies
}

func splitPoint(p string) int {
	cut := ChunkLimit
	for cut > 0 && !utf8.RuneStart(p[cut]) {
		cut--
	}
	n := 0
	for n < cut && p[cut-1-n] == '\\' {
		n++
	}
	if n%2 == 1 {
		cut--
	}
	return cut
}
