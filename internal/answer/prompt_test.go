package answer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casefile/internal/domain"
)

func testCase() domain.CaseInfo {
	return domain.CaseInfo{
		Expediente: "00123-2024-0-1801-JR-PE-01",
		Defendido:  "JUAN PEREZ GOMEZ",
		Juzgado:    "1º Juzgado Penal de Lima",
		Juez:       "MARIA LOPEZ",
		Fiscalia:   "2ª Fiscalía Provincial Penal",
		Delitos:    []string{"Colusión", "Peculado"},
		Imputacion: "Se le imputa haber participado en la adjudicación irregular.",
	}
}

func testFragments() []domain.ScoredChunk {
	return []domain.ScoredChunk{
		{
			Chunk: domain.Chunk{
				Archivo:  "declaracion_testigo.pdf",
				Tipo:     "declaracion",
				Pagina:   12,
				Texto:    "El testigo manifestó no conocer al investigado.",
				Personas: []string{"CARLOS RUIZ"},
			},
			Score: 0.8123,
		},
		{
			Chunk: domain.Chunk{
				Archivo: "acta_incautacion.pdf",
				Tipo:    "acta",
				Pagina:  3,
				Texto:   "Se incautaron documentos contables.",
			},
			Score: 0.644,
		},
	}
}

func TestBuildContext(t *testing.T) {
	ctx := BuildContext(testFragments())

	assert.Contains(t, ctx, "[1] Documento: declaracion_testigo.pdf | Tipo: declaracion | Página: 12 | Relevancia: 0.812")
	assert.Contains(t, ctx, "Personas mencionadas: CARLOS RUIZ")
	assert.Contains(t, ctx, "El testigo manifestó no conocer al investigado.")

	// Fragments without persons get the N/A marker.
	assert.Contains(t, ctx, "[2] Documento: acta_incautacion.pdf | Tipo: acta | Página: 3 | Relevancia: 0.644")
	assert.Contains(t, ctx, "Personas mencionadas: N/A")

	blocks := strings.Split(ctx, "\n\n")
	assert.Len(t, blocks, 2)
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testCase(), "¿Qué declaró el testigo?", testFragments())
	require.NoError(t, err)

	assert.Contains(t, prompt, "DEFENSA del investigado JUAN PEREZ GOMEZ")
	assert.Contains(t, prompt, "CASO: Expediente 00123-2024-0-1801-JR-PE-01")
	assert.Contains(t, prompt, "DELITOS IMPUTADOS: Colusión; Peculado")
	assert.Contains(t, prompt, "JUEZ: MARIA LOPEZ")
	assert.Contains(t, prompt, "declaracion_testigo.pdf")
	assert.True(t, strings.HasSuffix(prompt, "¿Qué declaró el testigo?"))
}
