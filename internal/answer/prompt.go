package answer

import (
	"fmt"
	"strings"
	"text/template"

	"casefile/internal/domain"
)

// promptTemplate is the fixed instruction template sent to the model. The
// case metadata comes from the case configuration; the context block and the
// query are built per invocation.
var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(
	`Eres un asistente legal especializado en derecho penal peruano, trabajando para la DEFENSA del investigado {{.Caso.Defendido}}.

CASO: Expediente {{.Caso.Expediente}}
DELITOS IMPUTADOS: {{join .Caso.Delitos "; "}}
JUZGADO: {{.Caso.Juzgado}}
JUEZ: {{.Caso.Juez}}
FISCALÍA: {{.Caso.Fiscalia}}

SOBRE EL DEFENDIDO:
{{.Caso.Imputacion}}

TU ROL:
1. Responde basándote ÚNICAMENTE en los documentos del caso proporcionados como contexto
2. Identifica tanto los elementos de cargo como posibles argumentos de defensa
3. Cita siempre el documento fuente, página y sección
4. Si detectas contradicciones o debilidades en la acusación, señálalas
5. Sé preciso con nombres, fechas y cargos
6. Si no encuentras información en el contexto, dilo claramente

FORMATO DE RESPUESTA:
- **Respuesta:** (resumen directo)
- **Detalle:** (análisis con citas del expediente)
- **Fuentes:** (documento, página)
- **Nota para la defensa:** (si aplica, observaciones estratégicas)

CONTEXTO DE DOCUMENTOS DEL CASO:
{{.Contexto}}

---
CONSULTA:
{{.Consulta}}`))

// BuildContext concatenates the retrieved fragments into the context block:
// a numbered header per fragment followed by its raw text, fragments
// separated by a blank line.
func BuildContext(fragments []domain.ScoredChunk) string {
	parts := make([]string, 0, len(fragments))
	for i, f := range fragments {
		personas := "N/A"
		if len(f.Personas) > 0 {
			personas = strings.Join(f.Personas, ", ")
		}
		parts = append(parts, fmt.Sprintf(
			"[%d] Documento: %s | Tipo: %s | Página: %d | Relevancia: %.3f\nPersonas mencionadas: %s\n%s",
			i+1, f.Archivo, f.Tipo, f.Pagina, f.Score, personas, f.Texto))
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt renders the full prompt for a query and its retrieved context.
func BuildPrompt(caso domain.CaseInfo, query string, fragments []domain.ScoredChunk) (string, error) {
	var b strings.Builder
	err := promptTemplate.Execute(&b, struct {
		Caso     domain.CaseInfo
		Contexto string
		Consulta string
	}{Caso: caso, Contexto: BuildContext(fragments), Consulta: query})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}
