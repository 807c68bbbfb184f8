package scene

import "orbitfolio/internal/catalog"

// ViewState is the phase of the browser.
type ViewState int

const (
	StateBooting ViewState = iota
	StateActive
	StateDetailOpen
	StateSidebarOpen
	StateClosed
)

func (s ViewState) String() string {
	switch s {
	case StateBooting:
		return "BOOTING"
	case StateActive:
		return "ACTIVE"
	case StateDetailOpen:
		return "DETAIL_OPEN"
	case StateSidebarOpen:
		return "SIDEBAR_OPEN"
	case StateClosed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

// Interactive reports whether pointer and keyboard input is accepted.
func (s ViewState) Interactive() bool {
	return s == StateActive || s == StateDetailOpen || s == StateSidebarOpen
}

// Cue is a feedback event the host may sonify.
type Cue int

const (
	CueNone Cue = iota
	CueHover
	CueSelect
	CueDeselect
	CueCore
	CueBootLine
	CueBootFlash
	CueClose
)

func (c Cue) String() string {
	switch c {
	case CueHover:
		return "hover"
	case CueSelect:
		return "select"
	case CueDeselect:
		return "deselect"
	case CueCore:
		return "core"
	case CueBootLine:
		return "boot_line"
	case CueBootFlash:
		return "boot_flash"
	case CueClose:
		return "close"
	}
	return "none"
}

// Callbacks connect the engine to its host. Any of them may be nil.
type Callbacks struct {
	// OnProjectSelect is called when the user asks to navigate to the
	// record's detail route.
	OnProjectSelect func(rec catalog.Record)
	// OnClose is called once, when the engine is torn down.
	OnClose func()
	// OnCue reports interaction feedback events.
	OnCue func(c Cue)
	// OnStateChange observes view-state transitions.
	OnStateChange func(from, to ViewState)
}
