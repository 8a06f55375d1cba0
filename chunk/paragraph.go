package chunk

import (
	"context"
)

// Paragraph accumulates blank-line-separated paragraphs into chunks. When
// adding the next paragraph would exceed chunkSize, the buffer is emitted and
// the next buffer is seeded with the emitted buffer's overlap tail.
type Paragraph struct{}

var _ Strategy = (*Paragraph)(nil)

// NewParagraph creates the paragraph chunking strategy.
func NewParagraph() *Paragraph {
	return &Paragraph{}
}

// Chunk implements Strategy. It never fails; the error return satisfies the
// interface shared with embedding-backed strategies.
func (p *Paragraph) Chunk(_ context.Context, text string, chunkSize, chunkOverlap int) ([]string, error) {
	var out []string
	var buf string

	for _, para := range splitParagraphs(text) {
		cand := joinSeed(buf, para, "\n\n")
		if tokenLen(cand) <= chunkSize {
			buf = cand
			continue
		}
		if buf != "" {
			out = append(out, buf)
		}
		buf = joinSeed(overlapTail(buf, chunkOverlap), para, "\n\n")
	}
	if buf != "" {
		out = append(out, buf)
	}
	return out, nil
}
