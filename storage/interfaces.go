package storage

import (
	"context"

	"github.com/poiesic/sanctum/core"
)

// VectorIndex persists embedded chunks and serves nearest-neighbor search
// with the access filter applied inside the search call itself (predicate
// pushdown): a fixed topK retrieved pre-filter could otherwise return zero
// eligible results even when eligible matches exist further down the
// ranking. Implementations must be thread-safe and must not retry
// internally.
type VectorIndex interface {
	// AddEmbeddings persists the given records. Each record carries its
	// content, vector and denormalized access metadata; record IDs are
	// deterministic, so re-ingestion overwrites rather than duplicates.
	AddEmbeddings(ctx context.Context, records []core.IndexRecord) error

	// Search returns up to topK hits eligible under filter, ordered by
	// descending relevance score.
	Search(ctx context.Context, queryVector []float32, topK int, filter core.AccessFilter) ([]core.SearchHit, error)

	// Close closes the index and releases resources.
	Close() error
}

// TokenVault durably persists the token records produced by redaction. A
// TokenRecord must reach the vault before its document's chunks may be
// indexed: the vaulted ciphertext is the only path back to the original
// value. Records are scoped by doc key, which embeds the tenant, so
// lookups are tenant-isolated by construction.
type TokenVault interface {
	// PutTokenRecords stores all records for one document atomically.
	PutTokenRecords(ctx context.Context, docKey string, records []core.TokenRecord) error

	// GetTokenRecord retrieves a single record by its token.
	// Returns ErrNotFound if no such token is vaulted under docKey.
	GetTokenRecord(ctx context.Context, docKey, token string) (*core.TokenRecord, error)

	// ListTokenRecords returns all records vaulted under docKey.
	ListTokenRecords(ctx context.Context, docKey string) ([]core.TokenRecord, error)
}
