package chunk

import (
	"context"
	"regexp"
	"strings"
)

// headingBoundary matches markdown headers and underline-style headings,
// which delimit the sections of the recursive strategy.
var headingBoundary = regexp.MustCompile(`(?m)\n\s*#{1,6}\s+|^\s*[A-Z][^\n]{0,60}\n[-=]{3,}\s*$`)

// Recursive splits on heading-like boundaries first, then paragraphs, then
// sentences, greedily packing sentences under the same overflow/overlap rule
// as Paragraph. The overlap carry resets at each heading boundary.
type Recursive struct{}

var _ Strategy = (*Recursive)(nil)

// NewRecursive creates the recursive chunking strategy.
func NewRecursive() *Recursive {
	return &Recursive{}
}

// Chunk implements Strategy.
func (r *Recursive) Chunk(_ context.Context, text string, chunkSize, chunkOverlap int) ([]string, error) {
	var out []string

	for _, section := range headingBoundary.Split(text, -1) {
		var buf string
		for _, para := range splitParagraphs(section) {
			for _, sentence := range splitSentences(para) {
				cand := joinSeed(buf, sentence, " ")
				if tokenLen(cand) <= chunkSize {
					buf = cand
					continue
				}
				if buf != "" {
					out = append(out, buf)
				}
				buf = joinSeed(overlapTail(buf, chunkOverlap), sentence, " ")
			}
		}
		// Section end flushes the buffer; the carry never crosses a heading.
		if buf != "" {
			out = append(out, buf)
		}
	}
	return out, nil
}

// splitSentences splits a paragraph at terminal punctuation followed by
// whitespace. The punctuation stays with the preceding sentence.
func splitSentences(para string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(para)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if !isTerminal(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !isSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
