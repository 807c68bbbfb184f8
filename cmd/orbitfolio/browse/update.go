package browse

import (
	"time"

	"orbitfolio/cmd/orbitfolio/ui"
	"orbitfolio/internal/logging"
	"orbitfolio/internal/scene"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case catalogMsg:
		m.engine.SetCatalog(msg.records)
		m.sidebar.SetRecords(m.engine.Records())
		m.loaded = true
		m.syncPanels()
		return m, nil

	case catalogChangedMsg:
		logging.Catalog("reloading catalog after change to %s", string(msg))
		return m, tea.Batch(m.fetchCatalog(), m.waitForStatus())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleFrame advances the engine. The clock stops once the session is over.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.out.done() || m.engine.State() == scene.StateClosed {
		return m, m.finish()
	}
	if m.start.IsZero() {
		m.start = now
	}
	m.snap = m.engine.Frame(now.Sub(m.start))
	m.syncPanels()
	m.renderScene()
	return m, m.frameTick()
}

// finish quits once an engine callback has ended the session.
func (m Model) finish() tea.Cmd {
	if !m.out.done() {
		return nil
	}
	m.performShutdown()
	return tea.Quit
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) panelOpen() bool {
	s := m.engine.State()
	return s == scene.StateDetailOpen || s == scene.StateSidebarOpen
}

func (m Model) helpView() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// bodyHeight is the height of the scene and panels. Full help grows the
// footer upward.
func (m Model) bodyHeight() int {
	h := m.layout.BodyHeight() - (lipgloss.Height(m.helpView()) - ui.FooterHeight)
	if h < 0 {
		return 0
	}
	return h
}

func (m *Model) resize() {
	m.layout = ui.NewLayoutConfig(m.width, m.height, m.cfg.UI.GetPanelRatio())
	m.help.Width = m.width
	_, pw := m.layout.Split(true)
	m.detail.SetSize(pw, m.bodyHeight())
	m.sidebar.SetSize(pw, m.bodyHeight())
	m.renderScene()
}

// renderScene rasterizes the latest snapshot and refreshes the hit map.
func (m *Model) renderScene() {
	if m.snap.State == scene.StateBooting || m.snap.State == scene.StateClosed {
		m.sceneView, m.hits = "", ui.HitMap{}
		return
	}
	w, _ := m.layout.Split(m.panelOpen())
	m.sceneView, m.hits = ui.RenderScene(m.snap, m.styles, ui.SceneOptions{
		Width:      w,
		Height:     m.bodyHeight(),
		ShowLabels: m.showLabels,
	})
}

// syncPanels follows engine state changes into the panels.
func (m *Model) syncPanels() {
	state := m.engine.State()
	if state == scene.StateDetailOpen {
		if rec, ok := m.engine.Selected(); ok && rec.ID != m.detailID {
			m.detail.SetRecord(rec)
			m.detailID = rec.ID
		}
	} else if state != scene.StateSidebarOpen {
		m.detailID = ""
	}
	if state == scene.StateSidebarOpen && m.lastState != scene.StateSidebarOpen {
		if id, ok := m.engine.Selection().Selected(); ok {
			m.sidebar.Focus(id)
		}
	}
	if state != m.lastState {
		m.lastState = state
		m.renderScene()
	}
}

// =============================================================================
// INPUT
// =============================================================================

// sceneAt maps a terminal cell to scene canvas coordinates.
func (m Model) sceneAt(x, y int) (int, int, bool) {
	w, _ := m.layout.Split(m.panelOpen())
	sy := y - ui.HeaderHeight
	if x < 0 || x >= w || sy < 0 || sy >= m.bodyHeight() {
		return 0, 0, false
	}
	return x, sy, true
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.engine.State().Interactive() {
		return m, nil
	}

	sx, sy, inScene := m.sceneAt(msg.X, msg.Y)
	if !inScene {
		if msg.Action == tea.MouseActionMotion {
			m.engine.Unhover()
		}
		var cmd tea.Cmd
		switch m.engine.State() {
		case scene.StateDetailOpen:
			m.detail, cmd = m.detail.Update(msg)
		case scene.StateSidebarOpen:
			m.sidebar, cmd = m.sidebar.Update(msg)
		}
		return m, cmd
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.engine.Zoom(-zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.engine.Zoom(zoomStep)
	case msg.Action == tea.MouseActionMotion:
		if t := m.hits.Pick(sx, sy); t.Kind == ui.HitNode {
			m.engine.Hover(t.ID)
		} else {
			m.engine.Unhover()
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		switch t := m.hits.Pick(sx, sy); t.Kind {
		case ui.HitNode:
			m.engine.Click(t.ID)
		case ui.HitCore:
			m.engine.ClickCore()
		}
	}
	m.syncPanels()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c tears down from any state, including boot.
	if key.Matches(msg, m.keys.Quit) {
		m.engine.Close()
		return m, m.finish()
	}

	state := m.engine.State()
	if !state.Interactive() {
		return m, nil
	}

	var cmd tea.Cmd
	if state == scene.StateSidebarOpen {
		// The filter prompt owns every key while it has focus. An applied
		// filter does not: esc still tears the scene down.
		switch {
		case m.sidebar.Filtering():
			m.sidebar, cmd = m.sidebar.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Click):
			m.engine.SelectFromSidebar(m.sidebar.SelectedID())
			m.syncPanels()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.engine.Escape()
		return m, m.finish()

	case key.Matches(msg, m.keys.Open):
		if m.engine.Open() {
			return m, m.finish()
		}

	case key.Matches(msg, m.keys.Next):
		m.engine.HoverStep(1)
	case key.Matches(msg, m.keys.Prev):
		m.engine.HoverStep(-1)
	case key.Matches(msg, m.keys.Click):
		m.engine.ClickHovered()
	case key.Matches(msg, m.keys.Core):
		m.engine.ClickCore()
	case key.Matches(msg, m.keys.CloseDetail):
		if state == scene.StateSidebarOpen {
			m.engine.CloseSidebar()
		} else {
			m.engine.CloseDetail()
		}

	case key.Matches(msg, m.keys.ZoomIn):
		m.engine.Zoom(-zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.engine.Zoom(zoomStep)
	case key.Matches(msg, m.keys.TiltUp):
		m.engine.Tilt(-tiltStep)
	case key.Matches(msg, m.keys.TiltDown):
		m.engine.Tilt(tiltStep)

	case key.Matches(msg, m.keys.Labels):
		m.showLabels = !m.showLabels
		m.renderScene()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.resize()

	default:
		switch state {
		case scene.StateDetailOpen:
			m.detail, cmd = m.detail.Update(msg)
		case scene.StateSidebarOpen:
			m.sidebar, cmd = m.sidebar.Update(msg)
		}
	}
	m.syncPanels()
	return m, cmd
}
