package pipeline

import (
	"log/slog"

	"github.com/poiesic/sanctum/ai"
	"github.com/poiesic/sanctum/chunk"
	"github.com/poiesic/sanctum/rerank"
)

// resolveChunker maps a configured chunker name to a strategy. Unknown names
// fall back to paragraph chunking. The semantic strategy needs the embedder
// and fails if it is nil.
func resolveChunker(name string, embedder ai.Embedder) (chunk.Strategy, error) {
	switch name {
	case ChunkerRecursive:
		return chunk.NewRecursive(), nil
	case ChunkerSemantic:
		return chunk.NewSemantic(embedder)
	case ChunkerParagraph, "":
		return chunk.NewParagraph(), nil
	default:
		slog.Warn("unknown chunker, using paragraph", "name", name)
		return chunk.NewParagraph(), nil
	}
}

// resolveReranker maps a configured reranker name to an implementation.
// Unknown names fall back to cosine.
func resolveReranker(name string) rerank.Reranker {
	switch name {
	case RerankerNone:
		return rerank.NewNone()
	case RerankerCosine, "":
		return rerank.NewCosine()
	default:
		slog.Warn("unknown reranker, using cosine", "name", name)
		return rerank.NewCosine()
	}
}
