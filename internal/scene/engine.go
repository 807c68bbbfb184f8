// Package scene is the orbital browser engine: it owns the catalog snapshot,
// the layout, hover and selection, the camera and the view-state machine,
// and turns elapsed time into a read-only Snapshot once per frame.
//
// The engine is single-threaded. Every method must be called from the same
// goroutine that calls Frame, which in orbitfolio is the bubbletea update
// loop.
package scene

import (
	"time"

	"orbitfolio/internal/boot"
	"orbitfolio/internal/camera"
	"orbitfolio/internal/catalog"
	"orbitfolio/internal/geom"
	"orbitfolio/internal/logging"
	"orbitfolio/internal/orbit"
	"orbitfolio/internal/selection"
)

// maxFrameStep caps the time step fed to the camera after a stall.
const maxFrameStep = 250 * time.Millisecond

// Options configures an Engine.
type Options struct {
	Radius         float64
	Ranges         orbit.Ranges
	Seed           uint64 // 0 = random
	LinkSamples    int
	Camera         camera.Config
	Boot           boot.Sequence
	ScanLinePeriod time.Duration
}

// DefaultOptions returns the stock engine options.
func DefaultOptions() Options {
	return Options{
		Radius:         4.0,
		Ranges:         orbit.DefaultRanges(),
		LinkSamples:    geom.DefaultLinkSamples,
		Camera:         camera.DefaultConfig(),
		Boot:           boot.Default(),
		ScanLinePeriod: 4 * time.Second,
	}
}

// Engine is the orbital browser state machine.
type Engine struct {
	opts Options
	cb   Callbacks

	records []catalog.Record
	index   map[string]int

	layout     *orbit.LayoutCache
	placements []orbit.Placement
	positions  []geom.Vec3
	linker     *geom.Linker

	sel   selection.State
	cam   *camera.Controller
	state ViewState

	lastElapsed time.Duration
	bootLines   int
	bootFlash   bool
	camTarget   string // id the camera last followed, "" for the origin
}

// New creates an engine in StateBooting with an empty catalog.
func New(opts Options, cb Callbacks) *Engine {
	if opts.Radius <= 0 {
		opts.Radius = DefaultOptions().Radius
	}
	if opts.ScanLinePeriod <= 0 {
		opts.ScanLinePeriod = DefaultOptions().ScanLinePeriod
	}
	e := &Engine{
		opts:   opts,
		cb:     cb,
		index:  map[string]int{},
		layout: orbit.NewLayoutCache(opts.Radius, opts.Ranges, opts.Seed),
		linker: geom.NewLinker(opts.LinkSamples),
		cam:    camera.New(opts.Camera),
		state:  StateBooting,
	}
	e.placements = e.layout.Placements(0)
	logging.Scene("scene engine created: radius=%.2f boot=%v", e.layout.Radius(), opts.Boot.Duration())
	return e
}

// =============================================================================
// CATALOG
// =============================================================================

// SetCatalog replaces the records. The layout is kept when the count is
// unchanged. Hover and selection on records that disappeared are dropped,
// closing the detail panel if it showed one.
func (e *Engine) SetCatalog(records []catalog.Record) {
	e.records = make([]catalog.Record, 0, len(records))
	e.index = make(map[string]int, len(records))
	for _, r := range records {
		if _, dup := e.index[r.ID]; dup || r.ID == "" {
			logging.SceneDebug("skipping duplicate or empty record id %q", r.ID)
			continue
		}
		e.index[r.ID] = len(e.records)
		e.records = append(e.records, r.Clone())
	}

	e.placements = e.layout.Placements(len(e.records))
	e.positions = e.positions[:0]

	keep := make(map[string]struct{}, len(e.records))
	for id := range e.index {
		keep[id] = struct{}{}
	}
	e.linker.Forget(keep)

	if dropped := e.sel.Retain(e.has); dropped && e.state == StateDetailOpen {
		e.transition(StateActive)
	}
	logging.Scene("catalog set: %d records (layout generation %d)", len(e.records), e.layout.Generation())
}

func (e *Engine) has(id string) bool {
	_, ok := e.index[id]
	return ok
}

// Records returns the catalog in layout order. Callers must not modify it.
func (e *Engine) Records() []catalog.Record { return e.records }

// Record looks up a record by id.
func (e *Engine) Record(id string) (catalog.Record, bool) {
	i, ok := e.index[id]
	if !ok {
		return catalog.Record{}, false
	}
	return e.records[i], true
}

// Placements returns the current layout. Callers must not modify it.
func (e *Engine) Placements() []orbit.Placement { return e.placements }

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current view state.
func (e *Engine) State() ViewState { return e.state }

// Selection returns a copy of the hover and selection state.
func (e *Engine) Selection() selection.State { return e.sel }

// Selected returns the selected record, if any.
func (e *Engine) Selected() (catalog.Record, bool) {
	id, ok := e.sel.Selected()
	if !ok {
		return catalog.Record{}, false
	}
	return e.Record(id)
}

// Camera exposes the camera controller for read access.
func (e *Engine) Camera() *camera.Controller { return e.cam }

// =============================================================================
// STATE MACHINE
// =============================================================================

func (e *Engine) transition(to ViewState) {
	from := e.state
	if from == to {
		return
	}
	e.state = to
	logging.Scene("view state %s -> %s", from, to)
	if e.cb.OnStateChange != nil {
		e.cb.OnStateChange(from, to)
	}
}

func (e *Engine) cue(c Cue) {
	if e.cb.OnCue != nil {
		e.cb.OnCue(c)
	}
}

// settle puts the engine in the state implied by the selection once no
// panel other than the detail panel is open.
func (e *Engine) settle() {
	if _, ok := e.sel.Selected(); ok {
		e.transition(StateDetailOpen)
	} else {
		e.transition(StateActive)
	}
}

// Hover marks id as the node under the pointer. Unknown ids clear hover.
func (e *Engine) Hover(id string) {
	if !e.state.Interactive() {
		return
	}
	if !e.has(id) {
		e.sel.Unhover()
		return
	}
	if e.sel.IsHovered(id) {
		return
	}
	e.sel.Hover(id)
	e.cue(CueHover)
}

// Unhover clears the hovered node.
func (e *Engine) Unhover() {
	if !e.state.Interactive() {
		return
	}
	e.sel.Unhover()
}

// HoverStep moves hover delta places through the catalog order, wrapping.
// With nothing hovered it starts from the selected node, then the first.
func (e *Engine) HoverStep(delta int) {
	if !e.state.Interactive() || len(e.records) == 0 {
		return
	}
	cur := -1
	if id, ok := e.sel.Hovered(); ok {
		cur = e.index[id]
	} else if id, ok := e.sel.Selected(); ok {
		cur = e.index[id]
	}
	n := len(e.records)
	var next int
	if cur < 0 {
		if delta < 0 {
			next = n - 1
		}
	} else {
		next = ((cur+delta)%n + n) % n
	}
	e.Hover(e.records[next].ID)
}

// Click toggles selection of the node id. Selecting opens (or swaps) the
// detail panel; clicking the selected node closes it.
func (e *Engine) Click(id string) {
	if !e.state.Interactive() || !e.has(id) {
		return
	}
	if e.sel.Click(id) {
		logging.SceneDebug("selected %s", id)
		e.cue(CueSelect)
		e.transition(StateDetailOpen)
		return
	}
	logging.SceneDebug("deselected %s", id)
	e.cue(CueDeselect)
	e.transition(StateActive)
}

// ClickHovered clicks the hovered node, if any.
func (e *Engine) ClickHovered() {
	if id, ok := e.sel.Hovered(); ok {
		e.Click(id)
	}
}

// ClickCore opens the sidebar listing every record. Clicking the core while
// the sidebar is open closes it again. Selection is untouched.
func (e *Engine) ClickCore() {
	if !e.state.Interactive() {
		return
	}
	if e.state == StateSidebarOpen {
		e.CloseSidebar()
		return
	}
	e.cue(CueCore)
	e.transition(StateSidebarOpen)
}

// SelectFromSidebar selects id and shows its detail panel.
func (e *Engine) SelectFromSidebar(id string) {
	if e.state != StateSidebarOpen || !e.has(id) {
		return
	}
	e.sel.Select(id)
	e.cue(CueSelect)
	e.transition(StateDetailOpen)
}

// CloseSidebar returns to the detail panel if a record is selected, or to
// the bare scene.
func (e *Engine) CloseSidebar() {
	if e.state != StateSidebarOpen {
		return
	}
	e.settle()
}

// CloseDetail deselects and returns to the bare scene.
func (e *Engine) CloseDetail() {
	if e.state != StateDetailOpen {
		return
	}
	e.sel.Clear()
	e.cue(CueDeselect)
	e.transition(StateActive)
}

// Open requests navigation to the selected record. It reports whether a
// navigation was issued.
func (e *Engine) Open() bool {
	if e.state != StateDetailOpen {
		return false
	}
	rec, ok := e.Selected()
	if !ok {
		return false
	}
	logging.Scene("navigate to %s", rec.Route())
	if e.cb.OnProjectSelect != nil {
		e.cb.OnProjectSelect(rec)
	}
	return true
}

// Escape requests teardown from any interactive state. It is ignored while
// booting.
func (e *Engine) Escape() {
	if !e.state.Interactive() {
		return
	}
	e.Close()
}

// Close tears the engine down from any state. OnClose fires once.
func (e *Engine) Close() {
	if e.state == StateClosed {
		return
	}
	e.cue(CueClose)
	e.sel.Unhover()
	e.sel.Clear()
	e.transition(StateClosed)
	if e.cb.OnClose != nil {
		e.cb.OnClose()
	}
}

// Zoom dollies the camera by delta scene units within its bounds.
func (e *Engine) Zoom(delta float64) {
	if !e.state.Interactive() {
		return
	}
	e.cam.Zoom(delta)
}

// Tilt changes the camera polar angle within its bounds.
func (e *Engine) Tilt(delta float64) {
	if !e.state.Interactive() {
		return
	}
	e.cam.Tilt(delta)
}
