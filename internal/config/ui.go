package config

import (
	"fmt"
	"strings"
)

// Theme names a UI palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts a theme name in any case. Empty means dark.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q (valid: dark, light)", s)
}

// UIConfig holds terminal interface configuration.
type UIConfig struct {
	Theme string `yaml:"theme" json:"theme"`

	// Mouse enables hover/click via terminal mouse motion reporting.
	Mouse bool `yaml:"mouse" json:"mouse"`

	// PanelRatio is the share of the width given to the detail or sidebar
	// panel when one is open (0.2-0.7).
	PanelRatio float64 `yaml:"panel_ratio" json:"panel_ratio"`

	// ShowLabels draws node codenames next to nodes.
	ShowLabels bool `yaml:"show_labels" json:"show_labels"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Theme:      string(ThemeDark),
		Mouse:      true,
		PanelRatio: 0.4,
		ShowLabels: true,
	}
}

// GetPanelRatio clamps the panel ratio into its usable range.
func (u UIConfig) GetPanelRatio() float64 {
	switch {
	case u.PanelRatio <= 0:
		return 0.4
	case u.PanelRatio < 0.2:
		return 0.2
	case u.PanelRatio > 0.7:
		return 0.7
	}
	return u.PanelRatio
}
