package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMeta(t *testing.T) {
	t.Run("LoadsTotals", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meta_embeddings.json")
		content := `{
			"total_vectores": 420,
			"documentos_incluidos": {
				"d1": {"archivo": "acta.pdf", "tipo": "acta", "chunks": 120},
				"d2": {"archivo": "pericia.pdf", "tipo": "pericia", "chunks": 300}
			}
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		m, err := LoadMeta(path)
		require.NoError(t, err)
		assert.Equal(t, 420, m.TotalVectores)
		assert.Len(t, m.Documentos, 2)
	})

	t.Run("MissingFileYieldsEmptyMeta", func(t *testing.T) {
		m, err := LoadMeta(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Zero(t, m.TotalVectores)
	})

	t.Run("MalformedFileFails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meta.json")
		require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))
		_, err := LoadMeta(path)
		require.Error(t, err)
	})
}

func TestFromMeta(t *testing.T) {
	m := &Meta{TotalVectores: 10}
	m.Documentos = map[string]struct {
		Archivo string `json:"archivo"`
		Tipo    string `json:"tipo"`
		Chunks  int    `json:"chunks"`
	}{
		"d2": {Archivo: "pericia.pdf", Tipo: "pericia", Chunks: 6},
		"d1": {Archivo: "acta.pdf", Tipo: "acta", Chunks: 4},
		"d3": {Archivo: "anexo.pdf", Tipo: "", Chunks: 0},
	}

	s := FromMeta(m, []Person{{Nombre: "JUAN"}, {Nombre: "MARIA"}})

	assert.Equal(t, 3, s.TotalDocumentos)
	assert.Equal(t, 10, s.TotalVectores)
	assert.Equal(t, 2, s.TotalPersonas)
	assert.Equal(t, 1, s.TiposDocumento["acta"])
	assert.Equal(t, 1, s.TiposDocumento["otro"]) // empty type is bucketed

	require.Len(t, s.Documentos, 3)
	assert.Equal(t, "d1", s.Documentos[0].ID)
	assert.Equal(t, "d3", s.Documentos[2].ID)

	assert.Equal(t, []string{"acta", "otro", "pericia"}, s.DocumentTypes())
}
