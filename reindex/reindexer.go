// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/sanctum/ai"
	"github.com/poiesic/sanctum/core"
	"github.com/poiesic/sanctum/pipeline"
)

// RecordSource enumerates stored chunk records and accepts rewritten ones.
// Satisfied by the badger vector index.
type RecordSource interface {
	CountRecords(ctx context.Context) (int, error)
	IterateRecords(ctx context.Context, batchSize int, fn func([]core.IndexRecord) error) error
	AddEmbeddings(ctx context.Context, records []core.IndexRecord) error
}

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer orchestrates re-embedding of every chunk record in the index.
type Reindexer struct {
	source   RecordSource
	embedder ai.Embedder
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(source RecordSource, embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reindexer{
		source:   source,
		embedder: embedder,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "reindexer"),
	}, nil
}

// Run re-embeds every chunk record in the index with the configured
// embedder, overwriting each record's vector in place. Progress is reported
// to the configured writer.
func (r *Reindexer) Run(ctx context.Context) error {
	total, err := r.source.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No records found in index (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d records (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	err = r.source.IterateRecords(ctx, r.config.BatchSize, func(records []core.IndexRecord) error {
		if err := r.processBatch(ctx, records); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(records)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d records in %v (%.1f records/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

// processBatch embeds one batch of record contents and writes the records
// back with their new vectors.
func (r *Reindexer) processBatch(ctx context.Context, records []core.IndexRecord) error {
	contents := make([]string, len(records))
	for i := range records {
		contents[i] = records[i].Content
	}

	var vectors [][]float32
	err := pipeline.RetryWithBackoff(ctx, r.logger, func() error {
		var embedErr error
		vectors, embedErr = r.embedder.EmbedTexts(ctx, contents)
		return embedErr
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("embedding batch: %w", err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("%w: %d contents, %d vectors", ErrLengthMismatch, len(contents), len(vectors))
	}

	for i := range records {
		records[i].Vector = vectors[i]
	}

	return r.source.AddEmbeddings(ctx, records)
}
