package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use and must
// return vectors of one fixed dimensionality per configuration.
//
// Implementations never retry internally; transient failures propagate to
// the orchestrator, which owns retry policy.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Synthesizer produces a natural-language answer from prompt text.
// Implementations must be thread-safe for concurrent use.
type Synthesizer interface {
	// Generate produces completion text for the given system and user
	// prompts. Returns an error if the provider call fails; it does not
	// retry internally.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Synthesizer instances, ensuring they share configuration appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Synthesizer returns the answer synthesis service.
	// The returned Synthesizer is safe for concurrent use.
	Synthesizer() Synthesizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
