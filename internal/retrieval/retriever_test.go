package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casefile/internal/domain"
	"casefile/internal/vectorstore"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.vector, s.err
}

func (s *stubEmbedder) Dimension() int { return len(s.vector) }

type stubIndex struct {
	hits []domain.Hit
	err  error
}

func (s *stubIndex) Search(ctx context.Context, vector []float32, topK int) ([]domain.Hit, error) {
	if s.err != nil {
		return nil, s.err
	}
	if topK < len(s.hits) {
		return s.hits[:topK], nil
	}
	return s.hits, nil
}

func (s *stubIndex) Close() error { return nil }

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ChunkID: "c0", Archivo: "acta.pdf", Tipo: "acta", Pagina: 1, Texto: "fragmento cero"},
		{ChunkID: "c1", Archivo: "declaracion.pdf", Tipo: "declaracion", Pagina: 3, Texto: "fragmento uno"},
		{ChunkID: "c2", Archivo: "pericia.pdf", Tipo: "pericia", Pagina: 7, Texto: "fragmento dos"},
	}
}

func TestRetrieve(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.5, 0.5}}

	t.Run("ReturnsChunksInIndexOrder", func(t *testing.T) {
		index := &stubIndex{hits: []domain.Hit{
			{Position: 2, Score: 0.9},
			{Position: 0, Score: 0.4},
		}}
		r := New(embedder, &Bundle{Index: index, Chunks: testChunks()})

		got, err := r.Retrieve(context.Background(), "consulta", 5)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "c2", got[0].ChunkID)
		assert.InDelta(t, 0.9, got[0].Score, 1e-6)
		assert.Equal(t, "c0", got[1].ChunkID)
	})

	t.Run("SkipsPositionsOutsideChunkStore", func(t *testing.T) {
		index := &stubIndex{hits: []domain.Hit{
			{Position: 1, Score: 0.8},
			{Position: 99, Score: 0.7},
			{Position: -1, Score: 0.6},
		}}
		r := New(embedder, &Bundle{Index: index, Chunks: testChunks()})

		got, err := r.Retrieve(context.Background(), "consulta", 5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "c1", got[0].ChunkID)
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		r := New(embedder, &Bundle{Index: &stubIndex{}, Chunks: testChunks()})
		_, err := r.Retrieve(context.Background(), "   ", 5)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("TopKBounds", func(t *testing.T) {
		r := New(embedder, &Bundle{Index: &stubIndex{}, Chunks: testChunks()})
		_, err := r.Retrieve(context.Background(), "consulta", 0)
		assert.ErrorIs(t, err, ErrBadTopK)
		_, err = r.Retrieve(context.Background(), "consulta", MaxTopK+1)
		assert.ErrorIs(t, err, ErrBadTopK)
	})

	t.Run("NilBundleIsUnavailable", func(t *testing.T) {
		r := New(embedder, nil)
		_, err := r.Retrieve(context.Background(), "consulta", 5)
		assert.ErrorIs(t, err, vectorstore.ErrIndexUnavailable)
	})

	t.Run("EmbedderFailurePropagates", func(t *testing.T) {
		failing := &stubEmbedder{err: errors.New("api down")}
		r := New(failing, &Bundle{Index: &stubIndex{}, Chunks: testChunks()})
		_, err := r.Retrieve(context.Background(), "consulta", 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embed query")
	})

	t.Run("NoHitsYieldsEmptySlice", func(t *testing.T) {
		r := New(embedder, &Bundle{Index: &stubIndex{}, Chunks: testChunks()})
		got, err := r.Retrieve(context.Background(), "consulta", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
