package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sanctum/core"
	"github.com/poiesic/sanctum/storage"
)

// VectorIndex implements storage.VectorIndex for BadgerDB.
//
// Search is a brute-force scan over the tenant/project key range. The access
// filter is evaluated inside the iteration, before scoring, so records the
// caller is not entitled to never leave the storage layer.
type VectorIndex struct {
	backend *Backend
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a new VectorIndex on the given backend.
func NewVectorIndex(backend *Backend) *VectorIndex {
	return &VectorIndex{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (v *VectorIndex) Close() error {
	return nil
}

// AddEmbeddings stores the given chunk records in a single transaction.
// Records are keyed under their tenant/project scope; writing an existing
// chunk ID overwrites the previous record.
func (v *VectorIndex) AddEmbeddings(ctx context.Context, records []core.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}
	if v.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return v.backend.WithTx(func(tx *badger.Txn) error {
		for i := range records {
			record := &records[i]
			key := makeIndexRecordKey(record.Tenant, record.ProjectID, record.ID)
			value := storage.MarshalIndexRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Search finds the topK records most similar to the query vector within the
// filter's tenant/project scope. Records that fail the access filter are
// skipped during iteration and never scored.
func (v *VectorIndex) Search(ctx context.Context, queryVector []float32, topK int, filter core.AccessFilter) ([]core.SearchHit, error) {
	if v.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if topK <= 0 {
		return nil, nil
	}

	var results []core.SearchHit

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeIndexScopePrefix(filter.Tenant, filter.ProjectID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var record *core.IndexRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalIndexRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}

			// Access check before scoring
			if !filter.Matches(record) {
				continue
			}

			// Skip records without embeddings
			if len(record.Vector) == 0 {
				continue
			}

			score := dotProduct(queryVector, record.Vector)
			results = append(results, core.SearchHit{
				Record: record,
				Score:  score,
			})
		}

		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b core.SearchHit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// CountRecords counts the stored chunk records across all scopes using a
// key-only scan.
func (v *VectorIndex) CountRecords(ctx context.Context) (int, error) {
	if v.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// IterateRecords walks every stored chunk record in batches, calling fn for
// each batch. Iteration stops on the first error from fn. Context
// cancellation is checked between batches.
func (v *VectorIndex) IterateRecords(ctx context.Context, batchSize int, fn func([]core.IndexRecord) error) error {
	if v.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	var batch []core.IndexRecord

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := fn(batch); err != nil {
			return err
		}
		batch = nil
		return nil
	}

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalIndexRecord(val)
				if err != nil {
					return err
				}
				batch = append(batch, *record)
				return nil
			})
			if err != nil {
				return err
			}
			if len(batch) >= batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	return flush()
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
