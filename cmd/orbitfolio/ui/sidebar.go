package ui

import (
	"fmt"

	"orbitfolio/internal/catalog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// recordItem adapts catalog.Record to list.Item
type recordItem struct {
	rec catalog.Record
}

func (i recordItem) Title() string { return i.rec.Label() }
func (i recordItem) Description() string {
	if i.rec.Codename != "" && i.rec.Codename != i.rec.Title {
		return fmt.Sprintf("%s · %s", i.rec.Title, i.rec.Status)
	}
	return string(i.rec.Status)
}
func (i recordItem) FilterValue() string {
	return i.rec.Codename + " " + i.rec.Title + " " + i.rec.Summary
}

// Sidebar lists every record in the catalog.
type Sidebar struct {
	width  int
	height int
	list   list.Model
	styles Styles
}

// NewSidebar creates an empty sidebar.
func NewSidebar(styles Styles) Sidebar {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(styles.Theme.Primary).
		BorderForeground(styles.Theme.Primary)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(styles.Theme.Accent).
		BorderForeground(styles.Theme.Primary)

	l := list.New(nil, d, 0, 0)
	l.Title = "All projects"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Header
	return Sidebar{list: l, styles: styles}
}

// SetRecords replaces the listed records, keeping the cursor on the same
// record id when it still exists.
func (s *Sidebar) SetRecords(recs []catalog.Record) {
	cur := s.SelectedID()
	items := make([]list.Item, len(recs))
	idx := 0
	for i, r := range recs {
		items[i] = recordItem{rec: r}
		if r.ID == cur {
			idx = i
		}
	}
	s.list.SetItems(items)
	if len(items) > 0 {
		s.list.Select(idx)
	}
}

// Focus moves the cursor to id.
func (s *Sidebar) Focus(id string) {
	for i, it := range s.list.Items() {
		if it.(recordItem).rec.ID == id {
			s.list.Select(i)
			return
		}
	}
}

// SetSize resizes the sidebar.
func (s *Sidebar) SetSize(width, height int) {
	s.width, s.height = width, height
	s.list.SetSize(PanelContentWidth(width), PanelContentHeight(height))
}

// SelectedID returns the id under the cursor, or "".
func (s Sidebar) SelectedID() string {
	if it := s.list.SelectedItem(); it != nil {
		return it.(recordItem).rec.ID
	}
	return ""
}

// Filtering reports whether the filter prompt has focus, in which case keys
// belong to the list.
func (s Sidebar) Filtering() bool {
	return s.list.FilterState() == list.Filtering
}

// Filtered reports whether a filter is applied to the list.
func (s Sidebar) Filtered() bool {
	return s.list.FilterState() == list.FilterApplied
}

// Update forwards input to the list.
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// View renders the sidebar.
func (s Sidebar) View() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}
	return s.styles.Panel.
		Width(s.width - PanelBorderWidth*2).
		Height(s.height - PanelBorderWidth*2).
		Render(s.list.View())
}
