// Package tui implements the interactive console: a login gate followed by
// tabs for the AI chat, direct search over the expediente, and the person
// registry.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"casefile/internal/domain"
	"casefile/internal/report"
	"casefile/internal/session"
	"casefile/internal/stats"
)

// RetrieverPort is the TUI-facing subset of the retrieval service.
type RetrieverPort interface {
	Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)
}

// AnswerPort produces a model answer (or a prefixed error string) for a
// query and its retrieved fragments.
type AnswerPort interface {
	Answer(ctx context.Context, query string, fragments []domain.ScoredChunk) string
}

type view int

const (
	viewLogin view = iota
	viewMain
)

type tab int

const (
	tabChat tab = iota
	tabSearch
	tabPersonas
	tabCount
)

var tabTitles = [tabCount]string{"Chat con IA", "Búsqueda directa", "Personas del caso"}

const searchLimit = 10

// Model is the Bubble Tea model for the console application.
type Model struct {
	retriever RetrieverPort
	answer    AnswerPort
	session   *session.Session
	caso      domain.CaseInfo
	stats     *stats.Stats
	persons   []stats.Person
	reportDir string
	topK      int

	// login view
	userInput  textinput.Model
	passInput  textinput.Model
	loginFocus int

	// main view
	input      textinput.Model
	viewport   viewport.Model
	spin       spinner.Model
	activeTab  tab
	busy       bool
	status     string
	width      int
	ready      bool
	typeFilter int // index into typeOptions; 0 = Todos

	lastQuery   string
	lastAnswer  string
	lastSources []domain.ScoredChunk

	searchQuery   string
	searchResults []domain.ScoredChunk
	personFilter  string
}

// Options carries the immutable collaborators of the TUI.
type Options struct {
	Retriever RetrieverPort
	Answer    AnswerPort
	Session   *session.Session
	Caso      domain.CaseInfo
	Stats     *stats.Stats
	Persons   []stats.Person
	ReportDir string
	TopK      int
}

// New creates the TUI model.
func New(opts Options) Model {
	user := textinput.New()
	user.Prompt = "Usuario: "
	user.Focus()
	user.CharLimit = 64

	pass := textinput.New()
	pass.Prompt = "Clave:   "
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 64

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Escriba su consulta sobre el caso..."
	in.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(0, 0)

	topK := opts.TopK
	if topK <= 0 {
		topK = 8
	}

	return Model{
		retriever: opts.Retriever,
		answer:    opts.Answer,
		session:   opts.Session,
		caso:      opts.Caso,
		stats:     opts.Stats,
		persons:   opts.Persons,
		reportDir: opts.ReportDir,
		topK:      topK,
		userInput: user,
		passInput: pass,
		input:     in,
		viewport:  vp,
		spin:      sp,
		status:    "Ingrese sus credenciales para acceder al expediente.",
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

type chatResultMsg struct {
	query     string
	fragments []domain.ScoredChunk
	answer    string
	err       error
}

type searchResultMsg struct {
	query   string
	results []domain.ScoredChunk
	err     error
}

type reportSavedMsg struct {
	path string
	err  error
}

func (m Model) runChatQuery(query string) tea.Cmd {
	retriever, ans, topK := m.retriever, m.answer, m.topK
	return func() tea.Msg {
		ctx := context.Background()
		fragments, err := retriever.Retrieve(ctx, query, topK)
		if err != nil {
			return chatResultMsg{query: query, err: err}
		}
		text := ans.Answer(ctx, query, fragments)
		return chatResultMsg{query: query, fragments: fragments, answer: text}
	}
}

func (m Model) runSearch(query string) tea.Cmd {
	retriever := m.retriever
	return func() tea.Msg {
		// Over-fetch so the type filter still has enough to show.
		results, err := retriever.Retrieve(context.Background(), query, 2*searchLimit)
		return searchResultMsg{query: query, results: results, err: err}
	}
}

func (m Model) saveReport() tea.Cmd {
	dir, query, answer, sources := m.reportDir, m.lastQuery, m.lastAnswer, m.lastSources
	return func() tea.Msg {
		path, err := report.Write(dir, query, answer, sources, time.Now())
		return reportSavedMsg{path: path, err: err}
	}
}

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, rh := contentBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 4 + qh + 1 // header, case line, tab bar, status + input frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.currentView() == viewLogin {
			return m.updateLogin(msg)
		}
		return m.updateMain(msg)

	case chatResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.viewport.SetContent(m.renderContent())
			return m, nil
		}
		m.lastQuery = msg.query
		m.lastAnswer = msg.answer
		m.lastSources = msg.fragments
		m.session.Append("user", msg.query)
		m.session.Append("assistant", msg.answer)
		m.status = "Respuesta lista. ctrl+r exporta el reporte."
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoBottom()
		return m, nil

	case searchResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.viewport.SetContent(m.renderContent())
			return m, nil
		}
		m.searchQuery = msg.query
		m.searchResults = msg.results
		m.status = fmt.Sprintf("Resultados para %q", msg.query)
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.status = "Error al guardar reporte: " + msg.err.Error()
		} else {
			m.status = "Reporte guardado en " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m.updateFocusedInput(msg)
}

func (m Model) currentView() view {
	if m.session.State() == session.Authenticated {
		return viewMain
	}
	return viewLogin
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.userInput.Focus()
			m.passInput.Blur()
		} else {
			m.passInput.Focus()
			m.userInput.Blur()
		}
		return m, textinput.Blink
	case "enter":
		user := strings.TrimSpace(m.userInput.Value())
		pass := m.passInput.Value()
		if err := m.session.Login(user, pass); err != nil {
			m.status = err.Error()
			m.passInput.SetValue("")
			return m, nil
		}
		m.status = fmt.Sprintf("Sesión iniciada como %s.", user)
		m.userInput.SetValue("")
		m.passInput.SetValue("")
		m.input.Focus()
		m.viewport.SetContent(m.renderContent())
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.userInput, cmd = m.userInput.Update(msg)
	} else {
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		m.syncInputForTab()
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		m.syncInputForTab()
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case "esc":
		m.session.Logout()
		m.activeTab = tabChat
		m.busy = false
		m.lastQuery, m.lastAnswer, m.lastSources = "", "", nil
		m.searchQuery, m.searchResults = "", nil
		m.personFilter = ""
		m.input.SetValue("")
		m.loginFocus = 0
		m.userInput.Focus()
		m.passInput.Blur()
		m.status = "Sesión cerrada."
		return m, textinput.Blink
	case "ctrl+r":
		if m.activeTab == tabChat && m.lastAnswer != "" {
			m.status = "Guardando reporte..."
			return m, m.saveReport()
		}
		return m, nil
	case "ctrl+f":
		if m.activeTab == tabSearch {
			m.typeFilter = (m.typeFilter + 1) % (len(m.stats.DocumentTypes()) + 1)
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil
	case "up":
		m.viewport.LineUp(1)
		return m, nil
	case "down":
		m.viewport.LineDown(1)
		return m, nil
	case "pgup":
		m.viewport.ViewUp()
		return m, nil
	case "pgdown":
		m.viewport.ViewDown()
		return m, nil
	case "enter":
		return m.submit()
	}
	return m.updateFocusedInput(msg)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	switch m.activeTab {
	case tabChat:
		if value == "" || m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Buscando en el expediente y analizando con IA..."
		m.input.SetValue("")
		return m, tea.Batch(m.spin.Tick, m.runChatQuery(value))
	case tabSearch:
		if value == "" || m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Buscando en el expediente..."
		return m, tea.Batch(m.spin.Tick, m.runSearch(value))
	case tabPersonas:
		m.personFilter = value
		m.viewport.SetContent(m.renderContent())
		return m, nil
	}
	return m, nil
}

func (m *Model) syncInputForTab() {
	switch m.activeTab {
	case tabChat:
		m.input.Placeholder = "Escriba su consulta sobre el caso..."
		m.input.SetValue("")
	case tabSearch:
		m.input.Placeholder = "Buscar en el expediente..."
		m.input.SetValue(m.searchQuery)
	case tabPersonas:
		m.input.Placeholder = "Filtrar por nombre..."
		m.input.SetValue(m.personFilter)
	}
	m.input.Focus()
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.currentView() == viewLogin {
		if m.loginFocus == 0 {
			m.userInput, cmd = m.userInput.Update(msg)
		} else {
			m.passInput, cmd = m.passInput.Update(msg)
		}
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	if m.activeTab == tabPersonas {
		m.personFilter = m.input.Value()
		m.viewport.SetContent(m.renderContent())
	}
	return m, cmd
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
