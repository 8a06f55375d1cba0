// Package pipeline orchestrates the two document workflows.
//
// The Runtime type wires detection, governance, masking, chunking, embedding
// and indexing into the ingestion pipeline, and embedding, access-filtered
// retrieval, reranking and synthesis into the answer pipeline. Strategies for
// each stage are selected by name through Config; unknown names fall back to
// stage defaults rather than failing.
//
// BatchIngestor runs ingestion concurrently over a worker pool. Per-document
// failures are reported per result and do not stop the batch.
package pipeline
