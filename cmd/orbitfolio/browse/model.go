// Package browse hosts the orbital scene as a bubbletea program.
//
// The Model owns one scene.Engine and drives it from the bubbletea update
// loop only: a tea.Tick frame clock advances it, pointer motion and keys
// feed its interaction operations, and its callbacks decide when the
// program ends. Teardown stops the frame clock, the audio session and the
// catalog watcher together.
package browse

import (
	"context"
	"sync"
	"time"

	"orbitfolio/cmd/orbitfolio/ui"
	"orbitfolio/internal/audio"
	"orbitfolio/internal/catalog"
	"orbitfolio/internal/config"
	"orbitfolio/internal/logging"
	"orbitfolio/internal/scene"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Camera steps per key press or wheel notch.
const (
	zoomStep = 0.75
	tiltStep = 0.08
)

// Options configures a browse session.
type Options struct {
	Config *config.Config
	Source catalog.Source

	// WatchPath is a catalog file to reload on change. Empty disables it.
	WatchPath string

	// Sink receives feedback tones when audio is enabled. Nil is silent.
	Sink audio.Sink
}

// Result is how a session ended.
type Result struct {
	Route  string         // navigation target when a record was opened
	Record catalog.Record // the opened record
	Closed bool           // torn down via esc or ctrl+c
}

// outcome is written by engine callbacks and shared by every copy of the
// Model, since bubbletea passes the model by value.
type outcome struct {
	Result
}

func (o *outcome) done() bool { return o.Closed || o.Route != "" }

// Model is the bubbletea model of the orbital browser.
type Model struct {
	cfg    *config.Config
	keys   KeyMap
	help   help.Model
	styles ui.Styles

	engine     *scene.Engine
	snap       scene.Snapshot
	sceneView  string
	hits       ui.HitMap
	lastState  scene.ViewState
	showLabels bool
	showHelp   bool
	mouse      bool

	detail   ui.DetailPanel
	detailID string
	sidebar  ui.Sidebar

	width  int
	height int
	layout ui.LayoutConfig

	frameInterval time.Duration
	start         time.Time

	source       catalog.Source
	fetchTimeout time.Duration
	loaded       bool

	watchPath     string
	watchDebounce time.Duration
	watcher       *catalog.Watcher
	statusChan    chan string

	audio *audio.Session
	out   *outcome

	shutdownOnce   *sync.Once
	shutdownCtx    context.Context    // Root context for background fetches
	shutdownCancel context.CancelFunc // Cancels shutdownCtx on quit
}

// New creates a browse model. The engine starts in the boot sequence with an
// empty catalog; the first fetch is issued by Init.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	// Unknown names fall back to dark; Validate reports them at load time.
	theme, _ := config.ParseTheme(cfg.UI.Theme)
	styles := ui.NewStyles(ui.ThemeFor(theme))
	out := &outcome{}

	var session *audio.Session
	if cfg.Audio.Enabled {
		session = audio.NewSession(opts.Sink, cfg.Audio.Volume)
		if err := session.Start(); err != nil {
			logging.AudioWarn("audio session failed to start: %v", err)
		}
	}

	engine := scene.New(scene.Options{
		Radius:         cfg.Scene.Radius,
		Ranges:         cfg.Orbit,
		Seed:           cfg.Scene.Seed,
		LinkSamples:    cfg.Scene.LinkSamples,
		Camera:         cfg.CameraRig(),
		Boot:           cfg.BootSequence(),
		ScanLinePeriod: cfg.GetScanLinePeriod(),
	}, scene.Callbacks{
		OnProjectSelect: func(rec catalog.Record) {
			out.Record = rec
			out.Route = rec.Route()
		},
		OnClose: func() { out.Closed = true },
		OnCue: func(c scene.Cue) {
			if session != nil {
				session.PlayPreset(presetFor(c))
			}
		},
		OnStateChange: func(from, to scene.ViewState) {
			logging.UI("view %s -> %s", from, to)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:            cfg,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		styles:         styles,
		engine:         engine,
		lastState:      engine.State(),
		showLabels:     cfg.UI.ShowLabels,
		mouse:          cfg.UI.Mouse,
		detail:         ui.NewDetailPanel(styles),
		sidebar:        ui.NewSidebar(styles),
		frameInterval:  cfg.GetFrameInterval(),
		source:         opts.Source,
		fetchTimeout:   cfg.GetFetchTimeout(),
		watchPath:      opts.WatchPath,
		watchDebounce:  cfg.GetWatchDebounce(),
		audio:          session,
		out:            out,
		shutdownOnce:   &sync.Once{},
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}
	if m.watchPath != "" {
		m.startWatcher()
	}
	return m
}

// startWatcher reloads the catalog whenever the watched file changes. The
// watcher goroutine only signals statusChan; the reload itself happens in
// Update.
func (m *Model) startWatcher() {
	ch := make(chan string, 1)
	w, err := catalog.NewWatcher(m.watchPath, m.watchDebounce, func() {
		select {
		case ch <- m.watchPath:
		default:
		}
	})
	if err != nil {
		logging.CatalogWarn("catalog watcher unavailable: %v", err)
		return
	}
	if err := w.Start(m.shutdownCtx); err != nil {
		logging.CatalogWarn("failed to watch %s: %v", m.watchPath, err)
		w.Stop()
		return
	}
	m.watcher = w
	m.statusChan = ch
}

// Shutdown gracefully stops all background work and releases resources.
// Safe to call multiple times - only executes once.
func (m *Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		if m.shutdownCancel != nil {
			m.shutdownCancel()
		}
		if m.watcher != nil {
			m.watcher.Stop()
		}
		// The watcher goroutine is gone, nothing can send anymore.
		if m.statusChan != nil {
			close(m.statusChan)
		}
		if m.audio != nil {
			m.audio.Stop()
		}
		logging.UI("browse session shut down")
	})
}

// performShutdown is a value-receiver wrapper for Shutdown() that can be called
// from Update().
func (m Model) performShutdown() {
	modelPtr := &m
	modelPtr.Shutdown()
}

// Result reports how the session ended.
func (m Model) Result() Result { return m.out.Result }

func presetFor(c scene.Cue) audio.Preset {
	switch c {
	case scene.CueHover:
		return audio.PresetHover
	case scene.CueSelect:
		return audio.PresetSelect
	case scene.CueDeselect:
		return audio.PresetDeselect
	case scene.CueCore:
		return audio.PresetCore
	case scene.CueBootLine:
		return audio.PresetBootLine
	case scene.CueBootFlash:
		return audio.PresetBootFlash
	case scene.CueClose:
		return audio.PresetClose
	}
	return audio.PresetNone
}

// =============================================================================
// COMMANDS
// =============================================================================

// frameMsg is one tick of the frame clock.
type frameMsg time.Time

// catalogMsg carries a completed catalog fetch.
type catalogMsg struct {
	records []catalog.Record
}

// catalogChangedMsg is sent when the watched catalog file changed.
type catalogChangedMsg string

func (m Model) frameTick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// fetchCatalog is the one-shot fetch. It never fails; errors degrade to an
// empty catalog.
func (m Model) fetchCatalog() tea.Cmd {
	src, timeout, ctx := m.source, m.fetchTimeout, m.shutdownCtx
	return func() tea.Msg {
		return catalogMsg{records: catalog.FetchOrEmpty(ctx, src, timeout)}
	}
}

// waitForStatus listens for catalog file changes
func (m Model) waitForStatus() tea.Cmd {
	if m.statusChan == nil {
		return nil
	}
	ch := m.statusChan
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return catalogChangedMsg(path)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchCatalog(),
		m.waitForStatus(),
		m.frameTick(),
	}
	if m.mouse {
		cmds = append(cmds, tea.EnableMouseAllMotion)
	}
	return tea.Batch(cmds...)
}
