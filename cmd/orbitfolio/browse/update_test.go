package browse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"orbitfolio/cmd/orbitfolio/ui"
	"orbitfolio/internal/audio"
	"orbitfolio/internal/catalog"
	"orbitfolio/internal/config"
	"orbitfolio/internal/scene"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testRecords(n int) []catalog.Record {
	out := make([]catalog.Record, n)
	for i := range out {
		out[i] = catalog.Record{
			ID:       fmt.Sprintf("p%d", i),
			Codename: fmt.Sprintf("NODE-%d", i),
			Title:    fmt.Sprintf("Project %d", i),
			Status:   catalog.StatusDeployed,
			Summary:  "summary",
		}
	}
	return out
}

// instantConfig boots with no delay so the first frame activates the scene.
func instantConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scene.Seed = 11
	cfg.Boot.Interval = "0s"
	cfg.Boot.Pulses = []string{"0s"}
	cfg.Boot.PulseGap = "0s"
	cfg.Boot.Settle = "0s"
	return cfg
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// newActiveModel returns a sized model with n records past the boot.
func newActiveModel(t *testing.T, n int) Model {
	t.Helper()
	m := New(Options{Config: instantConfig()})
	t.Cleanup(m.Shutdown)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})
	m, _ = step(t, m, catalogMsg{records: testRecords(n)})
	m, _ = step(t, m, frameMsg(t0))
	require.Equal(t, scene.StateActive, m.engine.State())
	return m
}

// =============================================================================
// WINDOW AND FRAME
// =============================================================================

func TestUpdate_WindowSize(t *testing.T) {
	m := New(Options{Config: instantConfig()})
	defer m.Shutdown()

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)

	assert.NotPanics(t, func() { step(t, m, tea.WindowSizeMsg{Width: -1, Height: -1}) })
}

func TestView_BeforeSize(t *testing.T) {
	m := New(Options{Config: instantConfig()})
	defer m.Shutdown()
	assert.Equal(t, "Initializing...", m.View())
}

func TestUpdate_BootIgnoresInput(t *testing.T) {
	cfg := instantConfig()
	cfg.Boot.Interval = "100ms"
	cfg.Boot.Settle = "200ms"
	m := New(Options{Config: cfg})
	defer m.Shutdown()

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = step(t, m, catalogMsg{records: testRecords(3)})
	m, cmd := step(t, m, frameMsg(t0))
	require.Equal(t, scene.StateBooting, m.engine.State())
	assert.NotNil(t, cmd, "frame clock keeps ticking during boot")

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, tea.MouseMsg{X: 50, Y: 15, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, scene.StateBooting, m.engine.State())

	m, _ = step(t, m, frameMsg(t0.Add(250*time.Millisecond)))
	assert.Contains(t, m.View(), cfg.BootSequence().Lines[0])

	m, _ = step(t, m, frameMsg(t0.Add(cfg.BootSequence().Duration())))
	assert.Equal(t, scene.StateActive, m.engine.State())
	assert.False(t, m.Result().Closed)
	_, hovered := m.engine.Selection().Hovered()
	assert.False(t, hovered, "input during boot must not leak into the scene")
}

func TestUpdate_CtrlCDuringBoot(t *testing.T) {
	m := New(Options{Config: config.DefaultConfig()})
	defer m.Shutdown()
	m, _ = step(t, m, frameMsg(t0))
	require.Equal(t, scene.StateBooting, m.engine.State())

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Result().Closed)
	assert.Equal(t, scene.StateClosed, m.engine.State())
}

func TestUpdate_FrameStopsAfterClose(t *testing.T) {
	m := newActiveModel(t, 3)
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, isQuit(cmd))

	_, cmd = step(t, m, frameMsg(t0.Add(time.Second)))
	assert.True(t, isQuit(cmd), "no further frame ticks once closed")
}

// =============================================================================
// POINTER
// =============================================================================

func TestUpdate_MouseHoverAndClick(t *testing.T) {
	m := newActiveModel(t, 5)

	var node ui.Target
	w, _ := m.layout.Split(false)
	for _, tg := range m.hits.Targets() {
		onScreen := tg.X >= 0 && tg.X < w && tg.Y >= 0 && tg.Y < m.bodyHeight()
		if tg.Kind == ui.HitNode && onScreen {
			node = tg
			break
		}
	}
	require.NotEmpty(t, node.ID)
	want := m.hits.Pick(node.X, node.Y).ID

	m, _ = step(t, m, tea.MouseMsg{X: node.X, Y: node.Y + ui.HeaderHeight, Action: tea.MouseActionMotion})
	id, ok := m.engine.Selection().Hovered()
	require.True(t, ok)
	assert.Equal(t, want, id)

	m, _ = step(t, m, tea.MouseMsg{X: node.X, Y: node.Y + ui.HeaderHeight, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, scene.StateDetailOpen, m.engine.State())
	assert.Equal(t, want, m.detailID)

	rec, _ := m.engine.Record(want)
	assert.Contains(t, m.View(), rec.Title)

	// Moving off every node clears hover but keeps the selection.
	m, _ = step(t, m, tea.MouseMsg{X: 0, Y: ui.HeaderHeight, Action: tea.MouseActionMotion})
	_, ok = m.engine.Selection().Hovered()
	assert.False(t, ok)
	assert.True(t, m.engine.Selection().IsSelected(want))
}

func TestUpdate_HoverClearsWhenPointerEntersPanel(t *testing.T) {
	m := newActiveModel(t, 5)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, scene.StateDetailOpen, m.engine.State())
	m, _ = step(t, m, frameMsg(t0.Add(33*time.Millisecond)))

	w, panel := m.layout.Split(true)
	require.Positive(t, panel)
	var node ui.Target
	for _, tg := range m.hits.Targets() {
		onScreen := tg.X >= 0 && tg.X < w && tg.Y >= 0 && tg.Y < m.bodyHeight()
		if tg.Kind == ui.HitNode && onScreen {
			node = tg
			break
		}
	}
	require.NotEmpty(t, node.ID)

	m, _ = step(t, m, tea.MouseMsg{X: node.X, Y: node.Y + ui.HeaderHeight, Action: tea.MouseActionMotion})
	_, ok := m.engine.Selection().Hovered()
	require.True(t, ok)

	m, _ = step(t, m, tea.MouseMsg{X: w + panel/2, Y: node.Y + ui.HeaderHeight, Action: tea.MouseActionMotion})
	_, ok = m.engine.Selection().Hovered()
	assert.False(t, ok, "hover follows the pointer out of the scene")
	assert.Equal(t, scene.StateDetailOpen, m.engine.State())
}

func TestUpdate_MouseWheelZooms(t *testing.T) {
	m := newActiveModel(t, 2)
	before := m.engine.Camera().Distance()

	m, _ = step(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	for i := 1; i <= 60; i++ {
		m, _ = step(t, m, frameMsg(t0.Add(time.Duration(i)*33*time.Millisecond)))
	}
	assert.Greater(t, m.engine.Camera().Distance(), before)
}

// =============================================================================
// KEYBOARD
// =============================================================================

func TestUpdate_KeyboardSelectAndOpen(t *testing.T) {
	m := newActiveModel(t, 4)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	id, ok := m.engine.Selection().Hovered()
	require.True(t, ok)
	assert.Equal(t, "p0", id)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	id, _ = m.engine.Selection().Hovered()
	assert.Equal(t, "p3", id)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, scene.StateDetailOpen, m.engine.State())
	assert.Equal(t, "p3", m.detailID)

	m, cmd := step(t, m, runes("o"))
	assert.True(t, isQuit(cmd))
	res := m.Result()
	assert.Equal(t, "/projects/p3", res.Route)
	assert.Equal(t, "p3", res.Record.ID)
	assert.False(t, res.Closed, "navigation is not a teardown")
}

func TestUpdate_CloseDetail(t *testing.T) {
	m := newActiveModel(t, 2)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, scene.StateDetailOpen, m.engine.State())

	m, _ = step(t, m, runes("x"))
	assert.Equal(t, scene.StateActive, m.engine.State())
	assert.Empty(t, m.detailID)
}

func TestUpdate_Sidebar(t *testing.T) {
	m := newActiveModel(t, 3)

	m, _ = step(t, m, runes("c"))
	require.Equal(t, scene.StateSidebarOpen, m.engine.State())
	assert.Contains(t, m.View(), "All projects")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "p1", m.sidebar.SelectedID())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, scene.StateDetailOpen, m.engine.State())
	assert.True(t, m.engine.Selection().IsSelected("p1"))

	// Reopening the sidebar puts the cursor on the selection; c closes it
	// back to the detail panel.
	m, _ = step(t, m, runes("c"))
	assert.Equal(t, "p1", m.sidebar.SelectedID())
	m, _ = step(t, m, runes("c"))
	assert.Equal(t, scene.StateDetailOpen, m.engine.State())
}

func TestUpdate_SidebarEscapeWithFilter(t *testing.T) {
	m := newActiveModel(t, 3)
	m, _ = step(t, m, runes("c"))
	require.Equal(t, scene.StateSidebarOpen, m.engine.State())

	// esc while typing a filter only cancels the filter.
	m, _ = step(t, m, runes("/"))
	require.True(t, m.sidebar.Filtering())
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, isQuit(cmd))
	assert.False(t, m.sidebar.Filtering())
	assert.Equal(t, scene.StateSidebarOpen, m.engine.State())

	// Once the filter is applied, esc tears the scene down.
	m, _ = step(t, m, runes("/"))
	m, _ = step(t, m, runes("1"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.sidebar.Filtered())
	require.Equal(t, scene.StateSidebarOpen, m.engine.State())

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
	assert.Equal(t, scene.StateClosed, m.engine.State())
	assert.True(t, m.Result().Closed)
}

func TestNew_ThemeNameAnyCase(t *testing.T) {
	for _, name := range []string{"Light", "LIGHT", " light "} {
		cfg := instantConfig()
		cfg.UI.Theme = name
		require.NoError(t, cfg.Validate())
		m := New(Options{Config: cfg})
		assert.False(t, m.styles.Theme.IsDark, name)
		m.Shutdown()
	}

	m := New(Options{Config: instantConfig()})
	defer m.Shutdown()
	assert.True(t, m.styles.Theme.IsDark)
}

func TestUpdate_EscapeClosesOnce(t *testing.T) {
	m := newActiveModel(t, 1)
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Result().Closed)
	assert.Empty(t, m.View())

	_, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
}

func TestUpdate_ToggleLabelsAndHelp(t *testing.T) {
	m := newActiveModel(t, 2)
	labels := m.showLabels
	m, _ = step(t, m, runes("l"))
	assert.NotEqual(t, labels, m.showLabels)

	short := m.bodyHeight()
	m, _ = step(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Less(t, m.bodyHeight(), short, "full help takes rows from the scene")
}

// =============================================================================
// CATALOG
// =============================================================================

func TestUpdate_CatalogReload(t *testing.T) {
	m := newActiveModel(t, 2)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.engine.Selection().IsSelected("p0"))

	_, cmd := step(t, m, catalogChangedMsg("catalog.yaml"))
	assert.NotNil(t, cmd)

	// p0 is gone after the reload: the detail panel closes.
	m, _ = step(t, m, catalogMsg{records: testRecords(3)[1:]})
	assert.Equal(t, scene.StateActive, m.engine.State())
	assert.Len(t, m.engine.Records(), 2)
	assert.Contains(t, m.renderHeader(), "2 projects")
}

func TestFetchCatalog(t *testing.T) {
	m := New(Options{
		Config: instantConfig(),
		Source: catalog.Static(testRecords(3)),
	})
	defer m.Shutdown()

	msg := m.fetchCatalog()()
	got, ok := msg.(catalogMsg)
	require.True(t, ok)
	assert.Len(t, got.records, 3)

	mixed := New(Options{Config: instantConfig(), Source: append(catalog.Static{{ID: "x"}}, testRecords(2)...)})
	defer mixed.Shutdown()
	got = mixed.fetchCatalog()().(catalogMsg)
	require.Len(t, got.records, 2, "invalid records are dropped, valid ones kept")
	assert.Equal(t, "p0", got.records[0].ID)
}

func TestWatcherLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, catalog.SaveFile(path, testRecords(1)))

	cfg := instantConfig()
	cfg.Catalog.WatchDebounce = "20ms"
	m := New(Options{Config: cfg, Source: catalog.NewFileSource(path), WatchPath: path})
	require.NotNil(t, m.watcher)

	wait := m.waitForStatus()
	require.NotNil(t, wait)
	require.NoError(t, os.WriteFile(path, []byte("projects: []\n"), 0644))

	done := make(chan tea.Msg, 1)
	go func() { done <- wait() }()
	select {
	case msg := <-done:
		assert.Equal(t, catalogChangedMsg(path), msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	m.Shutdown()
	m.Shutdown()
	assert.Nil(t, m.waitForStatus()(), "closed channel ends the listener")
}

func TestAudioCues(t *testing.T) {
	sink := &audio.RecorderSink{}
	cfg := instantConfig()
	cfg.Audio.Enabled = true
	m := New(Options{Config: cfg, Sink: sink})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = step(t, m, catalogMsg{records: testRecords(2)})
	m, _ = step(t, m, frameMsg(t0))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})

	require.Eventually(t, func() bool { return len(sink.Events()) > 0 }, 2*time.Second, 10*time.Millisecond)

	m.Shutdown()
	assert.Empty(t, sink.Sounding(), "shutdown releases every voice")
	assert.False(t, m.audio.Running())
}

func TestPresetFor(t *testing.T) {
	assert.Equal(t, audio.PresetHover, presetFor(scene.CueHover))
	assert.Equal(t, audio.PresetClose, presetFor(scene.CueClose))
	assert.Equal(t, audio.PresetNone, presetFor(scene.CueNone))
}

func TestView_Layout(t *testing.T) {
	m := newActiveModel(t, 3)
	out := m.View()
	lines := strings.Split(out, "\n")
	assert.Equal(t, 48, len(lines))
	assert.Contains(t, lines[0], "ORBITFOLIO")
	assert.Contains(t, lines[0], "3 projects")
}
