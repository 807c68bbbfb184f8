package ui

import (
	"fmt"
	"strings"

	"orbitfolio/internal/catalog"
	"orbitfolio/internal/logging"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// DetailPanel shows one record in a scrollable viewport.
type DetailPanel struct {
	width    int
	height   int
	viewport viewport.Model
	record   catalog.Record
	hasRec   bool

	styles   Styles
	renderer *glamour.TermRenderer
	wrap     int
	cache    *RenderCache
}

// NewDetailPanel creates an empty panel.
func NewDetailPanel(styles Styles) DetailPanel {
	vp := viewport.New(0, 0)
	return DetailPanel{
		viewport: vp,
		styles:   styles,
		cache:    NewRenderCache(64),
	}
}

// SetSize resizes the panel, re-rendering content for the new width.
func (p *DetailPanel) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.viewport.Width = PanelContentWidth(width)
	p.viewport.Height = PanelContentHeight(height)
	if p.hasRec {
		p.viewport.SetContent(p.renderRecord(p.record))
	}
}

// SetRecord shows rec, scrolling to the top when the record changes.
func (p *DetailPanel) SetRecord(rec catalog.Record) {
	changed := !p.hasRec || p.record.ID != rec.ID
	p.record, p.hasRec = rec, true
	p.viewport.SetContent(p.renderRecord(rec))
	if changed {
		p.viewport.GotoTop()
	}
}

// Record returns the shown record, if any.
func (p DetailPanel) Record() (catalog.Record, bool) { return p.record, p.hasRec }

// Update forwards scrolling input to the viewport.
func (p DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the panel.
func (p DetailPanel) View() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}
	return p.styles.Panel.
		Width(p.width - PanelBorderWidth*2).
		Height(p.height - PanelBorderWidth*2).
		Render(p.viewport.View())
}

func (p *DetailPanel) renderRecord(r catalog.Record) string {
	w := p.viewport.Width
	if w <= 0 {
		w = 40
	}
	s := p.styles

	var sb strings.Builder
	if r.Codename != "" {
		sb.WriteString(s.Muted.Render(r.Codename) + "\n")
	}
	sb.WriteString(s.Title.Render(truncate(r.Title, w)) + "\n")
	sb.WriteString(s.StatusBadge(r.Status))
	if r.Classification != "" {
		sb.WriteString(" " + s.Subtitle.Render(r.Classification))
	}
	sb.WriteString("\n\n")

	if r.Summary != "" {
		sb.WriteString(lipgloss.NewStyle().Width(w).Render(s.Body.Render(r.Summary)) + "\n\n")
	}

	if len(r.Metrics) > 0 {
		sb.WriteString(s.Bold.Render("Metrics") + "\n")
		for _, m := range r.Metrics {
			sb.WriteString(fmt.Sprintf("  %s %s\n", s.Info.Render(m.Value), s.Muted.Render(m.Label)))
		}
		sb.WriteString("\n")
	}

	if len(r.Tech) > 0 {
		tags := make([]string, len(r.Tech))
		for i, t := range r.Tech {
			tags[i] = s.Tag.Render(t)
		}
		sb.WriteString(lipgloss.NewStyle().Width(w).Render(strings.Join(tags, " ")) + "\n\n")
	}

	if r.Description != "" {
		sb.WriteString(s.RenderDivider(w) + "\n")
		sb.WriteString(p.safeRenderMarkdown(r.Description, w))
	}

	if len(r.Links) > 0 {
		sb.WriteString(s.Bold.Render("Links") + "\n")
		for _, l := range r.Links {
			label := l.Label
			if label == "" {
				label = l.URL
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", s.Body.Render(label), s.Muted.Render(l.URL)))
		}
	}

	sb.WriteString("\n" + s.Muted.Render("o open · x close · esc quit"))
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery
func (p *DetailPanel) safeRenderMarkdown(content string, width int) (result string) {
	defer func() {
		if r := recover(); r != nil {
			logging.UIWarn("markdown render panicked: %v", r)
			result = content
		}
	}()

	return p.cache.GetOrCompute(ComputeKey(content, width), func() string {
		if p.renderer == nil || p.wrap != width {
			style := "dark"
			if !p.styles.Theme.IsDark {
				style = "light"
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithStylePath(style),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				logging.UIWarn("markdown renderer unavailable: %v", err)
				return content
			}
			p.renderer, p.wrap = r, width
		}
		out, err := p.renderer.Render(content)
		if err != nil {
			return content
		}
		return out
	})
}
