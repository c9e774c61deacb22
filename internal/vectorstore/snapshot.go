package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/vecgo"

	"casefile/internal/domain"
)

// Snapshot searches a vecgo snapshot loaded from disk. The payload of each
// stored vector is its position in the chunk store; the index uses the
// dot-product metric over L2-normalized vectors.
type Snapshot struct {
	db        *vecgo.Vecgo[int]
	dimension int
}

// OpenSnapshot memory-maps the snapshot at path. A missing file yields
// ErrIndexUnavailable so callers can refuse queries instead of serving
// silently empty results.
func OpenSnapshot(path string, dimension int) (*Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexUnavailable, path)
		}
		return nil, fmt.Errorf("stat snapshot %s: %w", path, err)
	}
	db, err := vecgo.NewFromFile[int](path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return &Snapshot{db: db, dimension: dimension}, nil
}

// Search returns the topK nearest stored vectors, ordered by descending
// similarity. The vecgo dot-product distance is the negated inner product,
// so the similarity score is its negation.
func (s *Snapshot) Search(ctx context.Context, vector []float32, topK int) ([]domain.Hit, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("query vector dimension %d, index expects %d", len(vector), s.dimension)
	}
	results, err := s.db.KNNSearch(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("snapshot search: %w", err)
	}
	hits := make([]domain.Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, domain.Hit{Position: r.Data, Score: -r.Distance})
	}
	return hits, nil
}

// Close unmaps the snapshot file.
func (s *Snapshot) Close() error { return s.db.Close() }
