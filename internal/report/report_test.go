package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casefile/internal/domain"
)

func sampleFragments() []domain.ScoredChunk {
	return []domain.ScoredChunk{
		{
			Chunk: domain.Chunk{
				Archivo: "acta_incautacion.pdf",
				Tipo:    "acta",
				Pagina:  3,
				Texto:   "Se incautaron\ndocumentos contables.",
			},
			Score: 0.7512,
		},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
	data, err := Build("¿qué se incautó?", "Respuesta con <detalle>\nsegunda línea", sampleFragments(), now)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Reporte de Consulta Legal - Caso Penal")
	assert.Contains(t, html, "17/05/2024 14:30")
	assert.Contains(t, html, "¿qué se incautó?")

	// The answer is escaped, then newlines become formatting.
	assert.Contains(t, html, "Respuesta con &lt;detalle&gt;<br>segunda línea")

	assert.Contains(t, html, "[1] acta_incautacion.pdf (Pág. 3) | Tipo: acta | Relevancia: 0.751")
	// Fragment text is flattened to a single line.
	assert.Contains(t, html, "Se incautaron documentos contables.")
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reportes")
	now := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)

	path, err := Write(dir, "consulta", "respuesta", sampleFragments(), now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Reporte_Caso_20240517_1430.doc"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "consulta")
}
