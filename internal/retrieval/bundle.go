// Package retrieval composes the embedder, the vector index and the chunk
// store into the query-to-fragments pipeline.
package retrieval

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"casefile/internal/domain"
	"casefile/internal/vectorstore"
)

// Bundle pairs the vector index with the chunk sequence it was built from.
// Both are loaded once at startup and read-only afterwards. Vector i in the
// index corresponds to element i of Chunks; that alignment is an implicit
// contract of the offline pipeline, so LoadBundle verifies it up front
// instead of letting queries silently drop mismatched results.
type Bundle struct {
	Index  domain.VectorIndex
	Chunks []domain.Chunk
}

// LoadBundle parses the chunk store and checks the positional-alignment
// invariant against vectorCount, the number of vectors recorded for the
// index (zero skips the check when no metadata is available).
func LoadBundle(index domain.VectorIndex, chunksPath string, vectorCount int) (*Bundle, error) {
	data, err := os.ReadFile(chunksPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", vectorstore.ErrIndexUnavailable, chunksPath)
		}
		return nil, fmt.Errorf("read chunk store: %w", err)
	}
	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parse chunk store %s: %w", chunksPath, err)
	}
	if vectorCount > len(chunks) {
		return nil, fmt.Errorf("chunk store desynchronized: index holds %d vectors but store has %d chunks", vectorCount, len(chunks))
	}
	return &Bundle{Index: index, Chunks: chunks}, nil
}

// Close releases the underlying index.
func (b *Bundle) Close() error {
	if b == nil || b.Index == nil {
		return nil
	}
	return b.Index.Close()
}
