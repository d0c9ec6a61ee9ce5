package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inertz/storefront/internal/api"
	"github.com/inertz/storefront/internal/install"
)

const (
	toastDuration    = 2500 * time.Millisecond
	progressBarWidth = 30
	logTailLines     = 8
)

type (
	// registryChangedMsg tells the model to re-read registry snapshots.
	registryChangedMsg struct{}

	toastMsg      string
	clearToastMsg struct{ seq int }

	syncDoneMsg struct{ err error }
)

// Model is the storefront browser. All mutable install state lives in the
// registry; the model only holds render snapshots and cursor/filter state.
type Model struct {
	ctx context.Context
	reg *install.Registry
	rc  *install.Reconciler

	styles  *Styles
	spinner spinner.Model
	bar     progress.Model
	search  textinput.Model

	apps   []api.App
	states map[int]install.State

	cursor    int
	searching bool
	showHist  bool
	loaded    bool
	quitting  bool
	width     int
	height    int

	toast    string
	toastSeq int
	loadErr  error
}

// NewModel builds the browser model around an already-wired registry.
func NewModel(ctx context.Context, reg *install.Registry, rc *install.Reconciler) Model {
	st := NewStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Badge

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(progressBarWidth),
	)

	search := textinput.New()
	search.Placeholder = "search apps"
	search.Prompt = "/"
	search.CharLimit = 64

	return Model{
		ctx:     ctx,
		reg:     reg,
		rc:      rc,
		styles:  st,
		spinner: sp,
		bar:     bar,
		search:  search,
		states:  make(map[int]install.State),
	}
}

// Run starts the browser and blocks until the user quits or ctx is
// canceled. Registry notifications are bridged into the program here so
// session goroutines can drive re-renders.
func Run(ctx context.Context, reg *install.Registry, rc *install.Reconciler) error {
	m := NewModel(ctx, reg, rc)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	reg.Subscribe(func() {
		p.Send(registryChangedMsg{})
	})
	reg.OnToast(func(msg string) {
		p.Send(toastMsg(msg))
	})

	_, err := p.Run()
	return err
}

// Init kicks off the initial catalog sync.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.syncCmd())
}

func (m Model) syncCmd() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{err: m.rc.Sync(m.ctx)}
	}
}

func (m Model) pushToast(text string) (Model, tea.Cmd) {
	m.toast = text
	m.toastSeq++
	seq := m.toastSeq
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

// Update handles all browser messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case registryChangedMsg:
		m.refreshSnapshots()
		return m, nil

	case syncDoneMsg:
		m.loaded = true
		m.loadErr = msg.err
		m.refreshSnapshots()
		if msg.err != nil {
			return m.pushToast("sync failed: " + msg.err.Error())
		}
		return m, nil

	case toastMsg:
		return m.pushToast(string(msg))

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) refreshSnapshots() {
	m.apps = m.reg.Apps()
	m.states = m.reg.SnapshotAll()
	m.clampCursor()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
			m.clampCursor()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.clampCursor()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "enter", "i":
		if app, ok := m.selected(); ok {
			m.reg.Start(m.ctx, app)
		}
		return m, nil

	case "o":
		if app, ok := m.selected(); ok {
			m.reg.Open(m.ctx, app)
		}
		return m, nil

	case "s":
		m.loaded = false
		return m, tea.Batch(m.spinner.Tick, m.syncCmd())

	case "h":
		m.showHist = !m.showHist
		return m, nil
	}

	return m, nil
}

// visible applies the search filter to the catalog.
func (m Model) visible() []api.App {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		return m.apps
	}
	out := make([]api.App, 0, len(m.apps))
	for _, app := range m.apps {
		if strings.Contains(strings.ToLower(app.Name), query) ||
			strings.Contains(strings.ToLower(app.Category), query) ||
			strings.Contains(strings.ToLower(app.Description), query) {
			out = append(out, app)
		}
	}
	return out
}

func (m Model) selected() (api.App, bool) {
	items := m.visible()
	if m.cursor < 0 || m.cursor >= len(items) {
		return api.App{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
