// Package report renders a consultation into a Word-compatible HTML
// document (.doc) for filing alongside the case record.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"casefile/internal/domain"
)

var reportTemplate = template.Must(template.New("report").Parse(
	`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>
<head>
	<meta charset='utf-8'>
	<title>Reporte Caso Penal</title>
	<style>
		body { font-family: 'Calibri', Arial, sans-serif; line-height: 1.5; }
		h1 { color: #2E74B5; border-bottom: 2px solid #2E74B5; padding-bottom: 10px; }
		h2 { color: #1F4D78; margin-top: 25px; border-bottom: 1px solid #ddd; }
		.info-box { background-color: #f8f9fa; border: 1px solid #ddd; padding: 10px; margin-bottom: 20px; }
		.respuesta-box { background-color: #e8f4f8; padding: 15px; border-left: 5px solid #2E74B5; margin-bottom: 20px; }
		.fuente-box { border: 1px solid #eee; padding: 10px; margin-bottom: 15px; background-color: #fff; }
		.fuente-header { font-weight: bold; color: #555; font-size: 0.9em; background-color: #f0f0f0; padding: 5px; }
		.footer { margin-top: 50px; font-size: 0.8em; color: #888; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
	</style>
</head>
<body>
	<h1>Reporte de Consulta Legal - Caso Penal</h1>

	<div class="info-box">
		<p><strong>Fecha:</strong> {{.Fecha}}</p>
		<p><strong>Consulta Realizada:</strong> {{.Consulta}}</p>
	</div>

	<h2>Análisis de Inteligencia Artificial</h2>
	<div class="respuesta-box">
		{{.Respuesta}}
	</div>

	<h2>Documentos Fuente Consultados</h2>
	<p>A continuación se detallan los fragmentos del expediente utilizados para generar la respuesta:</p>
{{range .Fuentes}}	<div class="fuente-box">
		<div class="fuente-header">
			[{{.N}}] {{.Archivo}} (Pág. {{.Pagina}}) | Tipo: {{.Tipo}} | Relevancia: {{.Relevancia}}
		</div>
		<p>{{.Texto}}</p>
	</div>
{{end}}
	<div class="footer">
		Generado por Sistema de Consulta Legal RAG
	</div>
</body>
</html>
`))

type fuente struct {
	N          int
	Archivo    string
	Pagina     int
	Tipo       string
	Relevancia string
	Texto      string
}

// Build renders the report document for a query, its answer and the source
// fragments consulted.
func Build(query, respuesta string, fragments []domain.ScoredChunk, now time.Time) ([]byte, error) {
	fuentes := make([]fuente, 0, len(fragments))
	for i, f := range fragments {
		fuentes = append(fuentes, fuente{
			N:          i + 1,
			Archivo:    f.Archivo,
			Pagina:     f.Pagina,
			Tipo:       f.Tipo,
			Relevancia: fmt.Sprintf("%.3f", f.Score),
			Texto:      strings.ReplaceAll(f.Texto, "\n", " "),
		})
	}

	// Escape the answer first, then turn newlines into formatting.
	escaped := template.HTMLEscapeString(respuesta)
	respuestaHTML := template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))

	var b strings.Builder
	err := reportTemplate.Execute(&b, struct {
		Fecha     string
		Consulta  string
		Respuesta template.HTML
		Fuentes   []fuente
	}{
		Fecha:     now.Format("02/01/2006 15:04"),
		Consulta:  query,
		Respuesta: respuestaHTML,
		Fuentes:   fuentes,
	})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return []byte(b.String()), nil
}

// Write builds the report and writes it to dir with a timestamped name,
// returning the written path.
func Write(dir, query, respuesta string, fragments []domain.ScoredChunk, now time.Time) (string, error) {
	data, err := Build(query, respuesta, fragments, now)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("Reporte_Caso_%s.doc", now.Format("20060102_1504")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
