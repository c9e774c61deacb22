package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Padding(0, 1)

	caseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63")).
			Padding(0, 2)

	contentBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	queryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	userMsgStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	sourceHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("178"))

	defendantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

var suggestedQueries = []string{
	"¿Qué pruebas existen contra el defendido?",
	"¿Qué declararon los testigos principales?",
	"¿Qué irregularidades hay en la investigación?",
	"¿Cuál es la cronología de los hechos?",
}

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}
	if m.currentView() == viewLogin {
		return m.viewLogin()
	}
	return m.viewMain()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("⚖ Asistente Legal del Caso"))
	b.WriteString("\n")
	b.WriteString(caseStyle.Render("Expediente " + m.caso.Expediente))
	b.WriteString("\n\n")

	form := strings.Join([]string{
		m.userInput.View(),
		m.passInput.View(),
	}, "\n")
	b.WriteString(queryBoxStyle.Render(form))
	b.WriteString("\n")
	if m.status != "" {
		if strings.Contains(m.status, "incorrectas") {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab cambia de campo · enter ingresa · ctrl+c salir"))
	return b.String()
}

func (m Model) viewMain() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("⚖ Asistente Legal del Caso"))
	b.WriteString("\n")
	b.WriteString(caseStyle.Render(fmt.Sprintf(
		"Expediente %s · Defendido: %s · %s",
		m.caso.Expediente, m.caso.Defendido, m.caso.Juzgado)))
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(contentBoxStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(queryBoxStyle.Render(m.input.View()))
	b.WriteString("\n")
	if m.busy {
		b.WriteString(statusStyle.Render(m.spin.View() + " " + m.status))
	} else if strings.HasPrefix(m.status, "Error") {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(m.helpForTab()))
	return b.String()
}

func (m Model) helpForTab() string {
	switch m.activeTab {
	case tabSearch:
		return "tab pestaña · enter buscar · ctrl+f filtro · esc salir"
	case tabPersonas:
		return "tab pestaña · escriba para filtrar · esc salir"
	default:
		return "tab pestaña · enter consultar · ctrl+r reporte · esc salir"
	}
}

func (m Model) renderTabBar() string {
	parts := make([]string, 0, int(tabCount))
	for i := tab(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts = append(parts, activeTabStyle.Render(tabTitles[i]))
		} else {
			parts = append(parts, tabStyle.Render(tabTitles[i]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderContent() string {
	switch m.activeTab {
	case tabSearch:
		return m.renderSearch()
	case tabPersonas:
		return m.renderPersons()
	default:
		return m.renderChat()
	}
}

func (m Model) renderChat() string {
	transcript := m.session.Transcript()
	if len(transcript) == 0 {
		var b strings.Builder
		b.WriteString("Consultas sugeridas:\n\n")
		for _, q := range suggestedQueries {
			b.WriteString("  • " + q + "\n")
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("El expediente contiene %d documentos y %d fragmentos indexados.\n",
			m.stats.TotalDocumentos, m.stats.TotalVectores))
		return b.String()
	}

	var b strings.Builder
	for _, msg := range transcript {
		if msg.Role == "user" {
			b.WriteString(userMsgStyle.Render("Consulta: "+msg.Content) + "\n\n")
		} else {
			b.WriteString(assistantMsgStyle.Render(msg.Content) + "\n\n")
		}
	}
	if len(m.lastSources) > 0 {
		b.WriteString(sourceHeaderStyle.Render("Fuentes consultadas") + "\n")
		for i, f := range m.lastSources {
			b.WriteString(fmt.Sprintf("  [%d] %s · %s · pág. %d · relevancia %.3f\n",
				i+1, f.Archivo, f.Tipo, f.Pagina, f.Score))
		}
	}
	return b.String()
}

func (m Model) renderSearch() string {
	options := m.typeOptions()
	filter := options[m.typeFilter%len(options)]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Filtro de tipo: %s (ctrl+f cambia)\n\n", filter))

	if m.searchQuery == "" {
		b.WriteString("Escriba un término y presione enter para buscar fragmentos literales.\n")
		return b.String()
	}

	shown := 0
	for _, r := range m.searchResults {
		if filter != "Todos" && r.Tipo != filter {
			continue
		}
		shown++
		if shown > searchLimit {
			break
		}
		b.WriteString(sourceHeaderStyle.Render(fmt.Sprintf(
			"%d. %s · %s · pág. %d · relevancia %.3f", shown, r.Archivo, r.Tipo, r.Pagina, r.Score)))
		b.WriteString("\n")
		if len(r.Personas) > 0 {
			b.WriteString("   Personas: " + strings.Join(r.Personas, ", ") + "\n")
		}
		b.WriteString("   " + truncate(r.Texto, 400) + "\n\n")
	}
	if shown == 0 {
		b.WriteString("Sin resultados para el filtro seleccionado.\n")
	}
	return b.String()
}

func (m Model) typeOptions() []string {
	return append([]string{"Todos"}, m.stats.DocumentTypes()...)
}

func (m Model) renderPersons() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Personas identificadas en el expediente: %d\n\n", len(m.persons)))

	filter := strings.ToLower(strings.TrimSpace(m.personFilter))
	shown := 0
	for _, p := range m.persons {
		if filter != "" && !strings.Contains(strings.ToLower(p.Nombre), filter) {
			continue
		}
		shown++
		line := fmt.Sprintf("%-40s", p.Nombre)
		if strings.EqualFold(p.Nombre, m.caso.Defendido) {
			line = defendantStyle.Render(line + " [DEFENDIDO]")
		}
		b.WriteString(line)
		if p.DNI != "" {
			b.WriteString("  DNI " + p.DNI)
		}
		b.WriteString(fmt.Sprintf("  menciones: %d  documentos: %d\n", p.Frecuencia, len(p.Documentos)))
	}
	if shown == 0 {
		b.WriteString("Ninguna persona coincide con el filtro.\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
