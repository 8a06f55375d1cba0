package chunk

import (
	"context"
	"fmt"
	"math"

	"github.com/poiesic/sanctum/ai"
	"github.com/poiesic/sanctum/core"
)

// DefaultSimilarityThreshold is the cosine similarity at or above which
// adjacent paragraphs are merged into one chunk.
const DefaultSimilarityThreshold = 0.78

// Semantic embeds each paragraph independently and merges adjacent
// paragraphs while the merged token length stays within chunkSize and the
// cosine similarity between the running chunk's summed vector and the next
// paragraph's vector meets the threshold. It cannot run without an Embedder.
type Semantic struct {
	embedder  ai.Embedder
	threshold float32
}

var _ Strategy = (*Semantic)(nil)

// NewSemantic creates the semantic chunking strategy. The embedder is a
// mandatory dependency.
func NewSemantic(embedder ai.Embedder) (*Semantic, error) {
	return NewSemanticWithThreshold(embedder, DefaultSimilarityThreshold)
}

// NewSemanticWithThreshold creates the semantic strategy with a custom
// similarity threshold.
func NewSemanticWithThreshold(embedder ai.Embedder, threshold float32) (*Semantic, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &Semantic{embedder: embedder, threshold: threshold}, nil
}

// Chunk implements Strategy. Paragraph embedding is one batch call; an
// embedding failure aborts the whole invocation.
func (s *Semantic) Chunk(ctx context.Context, text string, chunkSize, chunkOverlap int) ([]string, error) {
	paras := splitParagraphs(text)
	if len(paras) == 0 {
		return nil, nil
	}

	vecs, err := s.embedder.EmbedTexts(ctx, paras)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	if len(vecs) != len(paras) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d paragraphs",
			core.ErrUpstreamUnavailable, len(vecs), len(paras))
	}

	var out []string
	current := paras[0]
	currentVec := append([]float32(nil), vecs[0]...)

	for i := 1; i < len(paras); i++ {
		cand := current + "\n\n" + paras[i]
		if cosine(currentVec, vecs[i]) >= s.threshold && tokenLen(cand) <= chunkSize {
			current = cand
			addInto(currentVec, vecs[i])
			continue
		}
		out = append(out, current)
		current = joinSeed(overlapTail(current, chunkOverlap), paras[i], "\n\n")
		// A closed chunk's vector does not carry over; the new chunk is
		// seeded with the paragraph's own vector.
		currentVec = append(currentVec[:0], vecs[i]...)
	}
	if current != "" {
		out = append(out, current)
	}
	return out, nil
}

// addInto accumulates b into a element-wise.
func addInto(a, b []float32) {
	for i := range a {
		if i < len(b) {
			a[i] += b[i]
		}
	}
}

// cosine computes cosine similarity between two vectors, 0 when either has
// zero magnitude.
func cosine(a, b []float32) float32 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	div := math.Sqrt(normA) * math.Sqrt(normB)
	if div == 0 {
		return 0
	}
	return float32(dot / div)
}
