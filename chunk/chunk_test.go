package chunk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/sanctum/ai/mock"
	"github.com/poiesic/sanctum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words builds a paragraph of n distinct whitespace-delimited tokens.
func words(prefix string, n int) string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(tokens, " ")
}

func TestParagraph_PacksUnderLimit(t *testing.T) {
	p := NewParagraph()

	text := words("a", 50) + "\n\n" + words("b", 50) + "\n\n" + words("c", 50)
	chunks, err := p.Chunk(context.Background(), text, 200, 10)

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "a0")
	assert.Contains(t, chunks[0], "c49")
}

func TestParagraph_SplitsOnOverflow(t *testing.T) {
	p := NewParagraph()

	text := words("a", 80) + "\n\n" + words("b", 80)
	chunks, err := p.Chunk(context.Background(), text, 100, 0)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], "a79")
	assert.NotContains(t, chunks[0], "b0")
	assert.Contains(t, chunks[1], "b0")
}

func TestParagraph_OverlapSeedsNextChunk(t *testing.T) {
	p := NewParagraph()

	text := words("a", 80) + "\n\n" + words("b", 80)
	chunks, err := p.Chunk(context.Background(), text, 100, 25)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	// 25% of the 80-token first chunk carries over.
	assert.True(t, strings.HasPrefix(chunks[1], "a60"), "second chunk starts with overlap, got %q", chunks[1][:20])
	assert.Contains(t, chunks[1], "b79")
}

func TestParagraph_OversizedParagraphStillEmitted(t *testing.T) {
	p := NewParagraph()

	text := words("big", 300)
	chunks, err := p.Chunk(context.Background(), text, 100, 10)

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 300, tokenLen(chunks[0]))
}

func TestParagraph_EmptyInput(t *testing.T) {
	p := NewParagraph()

	chunks, err := p.Chunk(context.Background(), "   \n\n  \n ", 100, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestParagraph_PreservesOrder(t *testing.T) {
	p := NewParagraph()

	text := words("a", 60) + "\n\n" + words("b", 60) + "\n\n" + words("c", 60)
	chunks, err := p.Chunk(context.Background(), text, 70, 0)

	require.NoError(t, err)
	joined := strings.Join(chunks, " ")
	assert.Less(t, strings.Index(joined, "a0"), strings.Index(joined, "b0"))
	assert.Less(t, strings.Index(joined, "b0"), strings.Index(joined, "c0"))
}

func TestRecursive_SentencePacking(t *testing.T) {
	r := NewRecursive()

	text := "First sentence here. Second sentence follows. Third one closes."
	chunks, err := r.Chunk(context.Background(), text, 6, 0)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "First sentence here. Second sentence follows.", chunks[0])
	assert.Equal(t, "Third one closes.", chunks[1])
}

func TestRecursive_HeadingResetsCarry(t *testing.T) {
	r := NewRecursive()

	text := words("a", 50) + ".\n\n# Heading\n\n" + words("b", 50) + "."
	chunks, err := r.Chunk(context.Background(), text, 60, 50)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	// No overlap tokens from the first section leak across the heading.
	assert.NotContains(t, chunks[1], "a49")
}

func TestRecursive_SpecOverlapScenario(t *testing.T) {
	r := NewRecursive()

	// Two paragraphs of 500 and 600 tokens, size 800, overlap 100%.
	text := words("a", 500) + "\n\n" + words("b", 600)
	chunks, err := r.Chunk(context.Background(), text, 800, 100)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 500, tokenLen(chunks[0]))
	// The second chunk's leading tokens duplicate the first chunk's
	// trailing tokens in full.
	assert.True(t, strings.HasPrefix(chunks[1], chunks[0]))
	assert.Contains(t, chunks[1], "b599")
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminal punctuation with space",
			text: "One two. Three four! Five?",
			want: []string{"One two.", "Three four!", "Five?"},
		},
		{
			name: "decimal points are not boundaries",
			text: "Version 2.5 shipped. It works.",
			want: []string{"Version 2.5 shipped.", "It works."},
		},
		{
			name: "trailing fragment without punctuation",
			text: "Done. And then",
			want: []string{"Done.", "And then"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.text))
		})
	}
}

func TestSemantic_RequiresEmbedder(t *testing.T) {
	_, err := NewSemantic(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestSemantic_MergesSimilarParagraphs(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		// First two paragraphs point the same way, third is orthogonal.
		vecs := [][]float32{{1, 0}, {1, 0}, {0, 1}}
		return vecs[:len(texts)], nil
	}

	s, err := NewSemantic(embedder)
	require.NoError(t, err)

	text := "alpha one\n\nalpha two\n\nbeta three"
	chunks, err := s.Chunk(context.Background(), text, 100, 0)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "alpha one\n\nalpha two", chunks[0])
	assert.Equal(t, "beta three", chunks[1])
}

func TestSemantic_SizeLimitClosesChunk(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vecs := make([][]float32, len(texts))
		for i := range vecs {
			vecs[i] = []float32{1, 0}
		}
		return vecs, nil
	}

	s, err := NewSemantic(embedder)
	require.NoError(t, err)

	// All paragraphs are similar but merging the third would exceed the size.
	text := words("a", 40) + "\n\n" + words("b", 40) + "\n\n" + words("c", 40)
	chunks, err := s.Chunk(context.Background(), text, 90, 0)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 80, tokenLen(chunks[0]))
	assert.Equal(t, 40, tokenLen(chunks[1]))
}

func TestSemantic_EmbedFailureAborts(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("provider down")
	}

	s, err := NewSemantic(embedder)
	require.NoError(t, err)

	_, err = s.Chunk(context.Background(), "one\n\ntwo", 100, 0)
	assert.ErrorIs(t, err, core.ErrUpstreamUnavailable)
}

func TestSemantic_EmptyInput(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	s, err := NewSemantic(embedder)
	require.NoError(t, err)

	chunks, err := s.Chunk(context.Background(), "", 100, 0)
	require.NoError(t, err)
	assert.Empty(t, chunks)
	assert.Zero(t, embedder.CallCount())
}

func TestOverlapTail(t *testing.T) {
	assert.Equal(t, "", overlapTail(words("a", 10), 0))
	assert.Equal(t, "a8 a9", overlapTail(words("a", 10), 20))
	assert.Equal(t, words("a", 10), overlapTail(words("a", 10), 100))
}
