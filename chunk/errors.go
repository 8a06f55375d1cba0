package chunk

import "errors"

var (
	// ErrEmbedderRequired is returned when the semantic strategy is
	// constructed without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")
)
