// Package ui provides the visual styling and rendering pieces for the
// orbitfolio terminal browser. Colors come from a data-driven theme
// descriptor so light and dark palettes share one interaction engine.
package ui

import (
	"strings"

	"orbitfolio/internal/catalog"
	"orbitfolio/internal/config"
	"orbitfolio/internal/geom"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors shared by both palettes.
var (
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme is the palette descriptor.
type Theme struct {
	Name       config.Theme
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	Core       lipgloss.Color
	ScanLine   lipgloss.Color
	Flash      lipgloss.Color

	// Link colors by state, dimmest first.
	LinkIdle     lipgloss.Color
	LinkHovered  lipgloss.Color
	LinkSelected lipgloss.Color

	// Node colors by record status.
	Deployed   lipgloss.Color
	InProgress lipgloss.Color
	Archived   lipgloss.Color

	IsDark bool
}

// DarkTheme returns the dark palette.
func DarkTheme() Theme {
	return Theme{
		Name:         config.ThemeDark,
		Background:   lipgloss.Color("#0b1220"),
		Foreground:   lipgloss.Color("#e6edf3"),
		Primary:      lipgloss.Color("#8BC34A"),
		Accent:       lipgloss.Color("#4dd0e1"),
		Muted:        lipgloss.Color("#51607a"),
		Border:       lipgloss.Color("#2a3850"),
		Card:         lipgloss.Color("#131c2e"),
		Core:         lipgloss.Color("#ffd54f"),
		ScanLine:     lipgloss.Color("#1b2a40"),
		Flash:        lipgloss.Color("#f2f2f2"),
		LinkIdle:     lipgloss.Color("#2f4058"),
		LinkHovered:  lipgloss.Color("#4dd0e1"),
		LinkSelected: lipgloss.Color("#b2ff59"),
		Deployed:     lipgloss.Color("#8BC34A"),
		InProgress:   lipgloss.Color("#FFC107"),
		Archived:     lipgloss.Color("#78909c"),
		IsDark:       true,
	}
}

// LightTheme returns the light palette.
func LightTheme() Theme {
	return Theme{
		Name:         config.ThemeLight,
		Background:   lipgloss.Color("#f4f5f6"),
		Foreground:   lipgloss.Color("#101F38"),
		Primary:      lipgloss.Color("#101F38"),
		Accent:       lipgloss.Color("#0277bd"),
		Muted:        lipgloss.Color("#8a94a6"),
		Border:       lipgloss.Color("#dce0e5"),
		Card:         lipgloss.Color("#ffffff"),
		Core:         lipgloss.Color("#e65100"),
		ScanLine:     lipgloss.Color("#e1e4e8"),
		Flash:        lipgloss.Color("#101F38"),
		LinkIdle:     lipgloss.Color("#c5ccd6"),
		LinkHovered:  lipgloss.Color("#0277bd"),
		LinkSelected: lipgloss.Color("#2e7d32"),
		Deployed:     lipgloss.Color("#2e7d32"),
		InProgress:   lipgloss.Color("#f57f17"),
		Archived:     lipgloss.Color("#78909c"),
		IsDark:       false,
	}
}

// ThemeFor returns the palette for a configured theme name.
func ThemeFor(name config.Theme) Theme {
	if name == config.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// LinkColor maps a link state to its color.
func (t Theme) LinkColor(s geom.LinkState) lipgloss.Color {
	switch s {
	case geom.LinkSelected:
		return t.LinkSelected
	case geom.LinkHovered:
		return t.LinkHovered
	}
	return t.LinkIdle
}

// StatusColor maps a record status to its node color.
func (t Theme) StatusColor(s catalog.Status) lipgloss.Color {
	switch s {
	case catalog.StatusDeployed:
		return t.Deployed
	case catalog.StatusArchived:
		return t.Archived
	}
	return t.InProgress
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style
	Panel  lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Label    lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Boot
	BootLine   lipgloss.Style
	BootCursor lipgloss.Style
	BootFlash  lipgloss.Style

	// Components
	Divider lipgloss.Style
	Badge   lipgloss.Style
	Tag     lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Background).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(PanelPaddingV, PanelPaddingH),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Faint(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		BootLine: lipgloss.NewStyle().
			Foreground(theme.Primary),

		BootCursor: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Primary),

		BootFlash: lipgloss.NewStyle().
			Background(theme.Flash).
			Foreground(theme.Background),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.Background).
			Padding(0, 1).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Border(lipgloss.NormalBorder(), false, true).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

// StatusBadge renders a record status as a colored badge.
func (s Styles) StatusBadge(st catalog.Status) string {
	return s.Badge.Background(s.Theme.StatusColor(st)).Render(strings.ReplaceAll(string(st), "_", " "))
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
