package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casefile/internal/domain"
	"casefile/internal/vectorstore"
)

// MaxTopK bounds the per-query retrieval work.
const MaxTopK = 50

var (
	// ErrEmptyQuery is returned when the query is empty after trimming.
	ErrEmptyQuery = errors.New("empty query")

	// ErrBadTopK is returned when topK is outside 1..MaxTopK.
	ErrBadTopK = fmt.Errorf("topK must be between 1 and %d", MaxTopK)
)

// Retriever maps a free-text query to a ranked list of scored chunks. It is
// a pure function of the loaded bundle; nothing is mutated at query time.
type Retriever struct {
	embedder domain.Embedder
	bundle   *Bundle
}

// New creates a Retriever over the given embedder and bundle. A nil bundle
// is allowed and makes every Retrieve fail with ErrIndexUnavailable.
func New(embedder domain.Embedder, bundle *Bundle) *Retriever {
	return &Retriever{embedder: embedder, bundle: bundle}
}

// Retrieve encodes the query, searches the index and materializes at most
// topK scored chunks in the index's score-descending order. Positions with
// no corresponding chunk are skipped: a guard against index/chunk-store
// desynchronization, not an expected case.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 || topK > MaxTopK {
		return nil, ErrBadTopK
	}
	if r.bundle == nil || r.bundle.Index == nil {
		return nil, vectorstore.ErrIndexUnavailable
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.bundle.Index.Search(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	results := make([]domain.ScoredChunk, 0, len(hits))
	for _, h := range hits {
		if h.Position < 0 || h.Position >= len(r.bundle.Chunks) {
			continue
		}
		results = append(results, domain.ScoredChunk{
			Chunk: r.bundle.Chunks[h.Position],
			Score: h.Score,
		})
	}
	return results, nil
}
