package ui

import (
	"strings"

	"orbitfolio/internal/boot"

	"github.com/charmbracelet/lipgloss"
)

// RenderBoot draws the boot log. While a flash pulse is lit the whole
// screen is filled with the flash color.
func RenderBoot(lines []string, f boot.Frame, width, height int, s Styles) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if f.Flash {
		row := s.BootFlash.Render(strings.Repeat(" ", width))
		return strings.TrimSuffix(strings.Repeat(row+"\n", height), "\n")
	}

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.BootLine.Render(truncate(l, width-2)))
	}
	if !f.Done {
		if len(lines) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.BootCursor.Render(" "))
	}
	log := sb.String()

	bar := progressBar(f.Progress, min(width-2, 40), s)
	body := lipgloss.JoinVertical(lipgloss.Left, log, "", bar)
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 1).Render(body))
}

func progressBar(p float64, width int, s Styles) string {
	if width <= 0 {
		return ""
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p * float64(width))
	return s.BootLine.Render(strings.Repeat("█", filled)) +
		s.Muted.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
