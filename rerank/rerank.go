package rerank

import (
	"math"
	"sort"

	"github.com/poiesic/sanctum/core"
)

// Reranker reorders retrieved hits by relevance. Implementations return the
// same elements in a new order and may be the identity. Rerankers never call
// out on their own; anything needing a provider receives it at construction.
type Reranker interface {
	Rerank(queryVector []float32, hits []core.SearchHit) []core.SearchHit
}

// None is the identity reranker: the store's own ordering stands.
type None struct{}

var _ Reranker = (*None)(nil)

// NewNone creates the passthrough reranker.
func NewNone() *None {
	return &None{}
}

// Rerank returns hits unchanged.
func (*None) Rerank(_ []float32, hits []core.SearchHit) []core.SearchHit {
	return hits
}

// Cosine re-scores hits by cosine similarity between the query vector and
// each record's stored vector, then reorders by the new score. Hits whose
// records carry no vector keep their original score.
type Cosine struct{}

var _ Reranker = (*Cosine)(nil)

// NewCosine creates the cosine reranker.
func NewCosine() *Cosine {
	return &Cosine{}
}

// Rerank implements Reranker.
func (*Cosine) Rerank(queryVector []float32, hits []core.SearchHit) []core.SearchHit {
	if len(queryVector) == 0 || len(hits) == 0 {
		return hits
	}

	rescored := make([]core.SearchHit, len(hits))
	copy(rescored, hits)
	for i := range rescored {
		if r := rescored[i].Record; r != nil && len(r.Vector) > 0 {
			rescored[i].Score = similarity(queryVector, r.Vector)
		}
	}
	sort.SliceStable(rescored, func(i, j int) bool {
		return rescored[i].Score > rescored[j].Score
	})
	return rescored
}

func similarity(a, b []float32) float32 {
	var dot, normA, normB float64
	n := min(len(a), len(b))
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
