package rerank

import (
	"testing"

	"github.com/poiesic/sanctum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hit(id string, score float32, vector []float32) core.SearchHit {
	return core.SearchHit{
		Record: &core.IndexRecord{ID: id, Vector: vector},
		Score:  score,
	}
}

func TestNone_Identity(t *testing.T) {
	r := NewNone()

	hits := []core.SearchHit{hit("a", 0.9, nil), hit("b", 0.5, nil)}
	got := r.Rerank([]float32{1, 0}, hits)

	assert.Equal(t, hits, got)
}

func TestCosine_ReordersByQuerySimilarity(t *testing.T) {
	r := NewCosine()

	// Store scored "far" higher, but its vector is orthogonal to the query.
	hits := []core.SearchHit{
		hit("far", 0.9, []float32{0, 1}),
		hit("near", 0.5, []float32{1, 0}),
	}
	got := r.Rerank([]float32{1, 0}, hits)

	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].Record.ID)
	assert.Equal(t, "far", got[1].Record.ID)
	assert.InDelta(t, 1.0, got[0].Score, 1e-6)

	// Input order untouched.
	assert.Equal(t, "far", hits[0].Record.ID)
}

func TestCosine_KeepsScoreWithoutVector(t *testing.T) {
	r := NewCosine()

	hits := []core.SearchHit{
		hit("unscored", 0.7, nil),
		hit("scored", 0.1, []float32{1, 0}),
	}
	got := r.Rerank([]float32{1, 0}, hits)

	require.Len(t, got, 2)
	// The vectorless hit keeps 0.7; the scored hit gets similarity 1.0.
	assert.Equal(t, "scored", got[0].Record.ID)
	assert.Equal(t, float32(0.7), got[1].Score)
}

func TestCosine_EmptyQueryVector(t *testing.T) {
	r := NewCosine()

	hits := []core.SearchHit{hit("a", 0.9, []float32{1, 0})}
	assert.Equal(t, hits, r.Rerank(nil, hits))
}
