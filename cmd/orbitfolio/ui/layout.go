// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for panel sizing
const (
	HeaderHeight = 1
	FooterHeight = 1

	PanelBorderWidth = 1
	PanelPaddingH    = 1
	PanelPaddingV    = 0

	// Panels are dropped below this width and the scene takes the screen.
	MinimumPanelTerminalWidth = 60
	MinPanelWidth             = 28
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	PanelRatio     float64
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int, panelRatio float64) LayoutConfig {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return LayoutConfig{TerminalWidth: width, TerminalHeight: height, PanelRatio: panelRatio}
}

// BodyHeight returns the rows between header and footer.
func (l LayoutConfig) BodyHeight() int {
	h := l.TerminalHeight - HeaderHeight - FooterHeight
	if h < 0 {
		return 0
	}
	return h
}

// Split returns the scene and panel widths when a panel is open. The panel
// width is zero on terminals too narrow to show one.
func (l LayoutConfig) Split(panelOpen bool) (sceneWidth, panelWidth int) {
	if !panelOpen || l.TerminalWidth < MinimumPanelTerminalWidth {
		return l.TerminalWidth, 0
	}
	panelWidth = int(float64(l.TerminalWidth) * l.PanelRatio)
	if panelWidth < MinPanelWidth {
		panelWidth = MinPanelWidth
	}
	return l.TerminalWidth - panelWidth, panelWidth
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	w := panelWidth - (PanelBorderWidth * 2) - (PanelPaddingH * 2)
	if w < 0 {
		return 0
	}
	return w
}

// PanelContentHeight returns the content height inside a bordered panel
func PanelContentHeight(panelHeight int) int {
	h := panelHeight - (PanelBorderWidth * 2) - (PanelPaddingV * 2)
	if h < 0 {
		return 0
	}
	return h
}
