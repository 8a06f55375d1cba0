// Package reindex regenerates embeddings for every stored chunk record.
//
// Switching embedding models invalidates stored vectors: query vectors from
// the new model are not comparable to chunk vectors from the old one. The
// Reindexer walks the whole index in batches, re-embeds each chunk's content
// and overwrites the record in place, leaving IDs and access metadata
// untouched.
package reindex
