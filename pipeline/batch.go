package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sanctum/core"
)

// Document is one unit of work for batch ingestion.
type Document struct {
	Text     string
	Metadata core.DocumentMetadata
}

// BatchResult pairs a document's position in the batch with its outcome.
// Exactly one of Result and Err is set.
type BatchResult struct {
	Index  int
	Result *IngestResult
	Err    error
}

// BatchIngestor runs document ingestion concurrently over a worker pool.
type BatchIngestor struct {
	runtime *Runtime
	pool    *ants.Pool
}

// NewBatchIngestor creates a batch ingestor with the given pool size.
// A size below 1 uses half the CPU count, with a minimum of 1.
func NewBatchIngestor(rt *Runtime, poolSize int) (*BatchIngestor, error) {
	if rt == nil {
		return nil, ErrRuntimeRequired
	}
	if poolSize < 1 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &BatchIngestor{runtime: rt, pool: pool}, nil
}

// IngestAll ingests every document and returns one result per input, in
// input order. Per-document failures are reported in the results; they do
// not stop the rest of the batch.
func (b *BatchIngestor) IngestAll(ctx context.Context, docs []Document) ([]BatchResult, error) {
	results := make([]BatchResult, len(docs))

	var wg sync.WaitGroup
	for i := range docs {
		i := i
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			res, err := b.runtime.Ingest(ctx, docs[i].Text, docs[i].Metadata)
			results[i] = BatchResult{Index: i, Result: res, Err: err}
		})
		if err != nil {
			wg.Done()
			results[i] = BatchResult{Index: i, Err: err}
		}
	}
	wg.Wait()

	return results, nil
}

// Release releases the worker pool.
// The ingestor should not be used after calling Release.
func (b *BatchIngestor) Release() {
	b.pool.Release()
}
