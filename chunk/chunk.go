package chunk

import (
	"context"
	"regexp"
	"strings"
)

// Strategy splits text into bounded, overlapping segments. chunkSize is the
// maximum chunk length and chunkOverlap the percentage of a chunk's trailing
// tokens repeated at the start of the next chunk; both are measured in
// whitespace-delimited tokens, a simple approximation rather than a
// tokenizer-exact count.
//
// Every returned chunk is non-empty after trimming, and concatenating the
// chunks' non-overlap content preserves the input's paragraph order. A single
// paragraph or sentence longer than chunkSize is still emitted, never
// dropped.
type Strategy interface {
	Chunk(ctx context.Context, text string, chunkSize, chunkOverlap int) ([]string, error)
}

var paragraphBoundary = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs splits text on blank-line boundaries, dropping empty
// paragraphs.
func splitParagraphs(text string) []string {
	raw := paragraphBoundary.Split(text, -1)
	paras := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// tokenLen approximates token count as whitespace-delimited words,
// with a floor of 1.
func tokenLen(s string) int {
	if n := len(strings.Fields(s)); n > 0 {
		return n
	}
	return 1
}

// overlapTail returns the trailing chunkOverlap-percent tokens of s, used to
// seed the next chunk.
func overlapTail(s string, chunkOverlap int) string {
	if chunkOverlap <= 0 {
		return ""
	}
	words := strings.Fields(s)
	n := len(words) * chunkOverlap / 100
	if n <= 0 {
		return ""
	}
	if n > len(words) {
		n = len(words)
	}
	return strings.Join(words[len(words)-n:], " ")
}

// joinSeed glues an overlap tail onto the next segment.
func joinSeed(tail, next, sep string) string {
	if tail == "" {
		return next
	}
	return strings.TrimSpace(tail + sep + next)
}
