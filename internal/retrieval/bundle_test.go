package retrieval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casefile/internal/vectorstore"
)

const chunkStoreJSON = `[
	{"chunk_id": "c0", "documento_id": "d1", "archivo_original": "acta.pdf", "tipo_documento": "acta", "pagina": 1, "texto": "uno", "personas_mencionadas": ["JUAN PEREZ"]},
	{"chunk_id": "c1", "documento_id": "d1", "archivo_original": "acta.pdf", "tipo_documento": "acta", "pagina": 2, "texto": "dos", "personas_mencionadas": []}
]`

func writeChunkStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunks_caso.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBundle(t *testing.T) {
	t.Run("LoadsChunks", func(t *testing.T) {
		b, err := LoadBundle(&stubIndex{}, writeChunkStore(t, chunkStoreJSON), 2)
		require.NoError(t, err)
		require.Len(t, b.Chunks, 2)
		assert.Equal(t, "acta.pdf", b.Chunks[0].Archivo)
		assert.Equal(t, []string{"JUAN PEREZ"}, b.Chunks[0].Personas)
	})

	t.Run("MissingStoreIsUnavailable", func(t *testing.T) {
		_, err := LoadBundle(&stubIndex{}, filepath.Join(t.TempDir(), "nope.json"), 0)
		assert.ErrorIs(t, err, vectorstore.ErrIndexUnavailable)
	})

	t.Run("DesynchronizedCountFails", func(t *testing.T) {
		_, err := LoadBundle(&stubIndex{}, writeChunkStore(t, chunkStoreJSON), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "desynchronized")
	})

	t.Run("ZeroCountSkipsCheck", func(t *testing.T) {
		_, err := LoadBundle(&stubIndex{}, writeChunkStore(t, chunkStoreJSON), 0)
		require.NoError(t, err)
	})

	t.Run("MalformedJSONFails", func(t *testing.T) {
		_, err := LoadBundle(&stubIndex{}, writeChunkStore(t, "{not json"), 0)
		require.Error(t, err)
	})
}
