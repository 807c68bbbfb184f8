package browse

import (
	"fmt"
	"strings"

	"orbitfolio/cmd/orbitfolio/ui"
	"orbitfolio/internal/scene"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	switch m.engine.State() {
	case scene.StateClosed:
		return ""
	case scene.StateBooting:
		return ui.RenderBoot(m.snap.BootLog, m.snap.Boot, m.width, m.height, m.styles)
	}

	body := m.sceneView
	if _, pw := m.layout.Split(m.panelOpen()); pw > 0 {
		var panel string
		switch m.engine.State() {
		case scene.StateDetailOpen:
			panel = m.detail.View()
		case scene.StateSidebarOpen:
			panel = m.sidebar.View()
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panel)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.styles.Footer.Render(m.helpView()),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("ORBITFOLIO")

	var parts []string
	if !m.loaded {
		parts = append(parts, "loading catalog")
	} else {
		parts = append(parts, fmt.Sprintf("%d projects", len(m.engine.Records())))
	}
	if rec, ok := m.engine.Selected(); ok {
		parts = append(parts, rec.Label())
	} else if id, ok := m.engine.Selection().Hovered(); ok {
		if rec, ok := m.engine.Record(id); ok {
			parts = append(parts, rec.Label())
		}
	}
	if m.engine.State() == scene.StateSidebarOpen {
		parts = append(parts, "all projects")
	}

	info := m.styles.Muted.Render(" " + strings.Join(parts, " · "))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, title, info))
}
