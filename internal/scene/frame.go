package scene

import (
	"math"
	"time"

	"orbitfolio/internal/boot"
	"orbitfolio/internal/camera"
	"orbitfolio/internal/catalog"
	"orbitfolio/internal/geom"
	"orbitfolio/internal/logging"
	"orbitfolio/internal/orbit"
)

// Node is the per-frame visual state of one record.
type Node struct {
	ID       string
	Label    string
	Status   catalog.Status
	Position geom.Vec3
	Bound    float64
	Hovered  bool
	Selected bool
}

// Snapshot is everything a renderer needs for one frame. It is a value the
// renderer may keep; the engine never mutates a returned snapshot.
type Snapshot struct {
	State    ViewState
	Elapsed  time.Duration
	Boot     boot.Frame
	BootLog  []string
	Nodes    []Node
	Links    []geom.Link
	View     camera.View
	ScanLine float64 // sweep phase in [0, 1)
	Selected string
	Hovered  string
}

// Frame advances the engine to elapsed (time since mount) and returns the
// frame to draw. It is a pure step of (state, elapsed): motion is evaluated
// at elapsed directly, so skipped frames do not accumulate error.
func (e *Engine) Frame(elapsed time.Duration) Snapshot {
	if elapsed < 0 {
		elapsed = 0
	}
	dt := elapsed - e.lastElapsed
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	e.lastElapsed = elapsed

	snap := Snapshot{State: e.state, Elapsed: elapsed}
	if e.state == StateClosed {
		return snap
	}

	if e.state == StateBooting {
		snap.Boot = e.stepBoot(elapsed)
		snap.BootLog = e.opts.Boot.Lines[:snap.Boot.Visible]
		if !snap.Boot.Done {
			return snap
		}
		e.transition(StateActive)
		snap.State = e.state
	} else {
		snap.Boot = boot.Frame{Visible: len(e.opts.Boot.Lines), Done: true, Progress: 1}
	}

	t := elapsed.Seconds()
	e.positions = orbit.Positions(e.positions, e.placements, t)

	selID, hasSel := e.sel.Selected()
	target := geom.Origin
	if hasSel {
		target = e.positions[e.index[selID]]
	}
	if selID != e.camTarget {
		if hasSel {
			logging.Camera("camera following %s", selID)
		} else {
			logging.Camera("camera released %s, returning to origin", e.camTarget)
		}
		e.camTarget = selID
	}
	e.cam.Update(dt.Seconds(), target, hasSel)

	hovID, _ := e.sel.Hovered()
	snap.Selected = selID
	snap.Hovered = hovID
	snap.View = e.cam.View()
	snap.Nodes = make([]Node, len(e.records))
	snap.Links = make([]geom.Link, len(e.records))
	for i, r := range e.records {
		n := Node{
			ID:       r.ID,
			Label:    r.Label(),
			Status:   r.Status,
			Position: e.positions[i],
			Bound:    orbit.Bound(e.placements[i]),
			Hovered:  r.ID == hovID,
			Selected: r.ID == selID,
		}
		snap.Nodes[i] = n

		ls := geom.LinkIdle
		switch {
		case n.Selected:
			ls = geom.LinkSelected
		case n.Hovered:
			ls = geom.LinkHovered
		}
		snap.Links[i] = e.linker.Build(r.ID, geom.Origin, n.Position, ls)
	}

	period := e.opts.ScanLinePeriod.Seconds()
	snap.ScanLine = math.Mod(t, period) / period
	return snap
}

func (e *Engine) stepBoot(elapsed time.Duration) boot.Frame {
	f := e.opts.Boot.At(elapsed)
	if f.Visible > e.bootLines {
		e.bootLines = f.Visible
		logging.BootDebug("boot line %d/%d", f.Visible, len(e.opts.Boot.Lines))
		e.cue(CueBootLine)
	}
	if f.Flash && !e.bootFlash {
		e.cue(CueBootFlash)
	}
	e.bootFlash = f.Flash
	return f
}
