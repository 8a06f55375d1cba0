package reindex

import "errors"

var (
	// ErrSourceRequired is returned when no record source is provided.
	ErrSourceRequired = errors.New("record source is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrLengthMismatch is returned when the embedder returns a different
	// number of vectors than contents submitted.
	ErrLengthMismatch = errors.New("embedding count does not match content count")
)
