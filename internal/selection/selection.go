// Package selection tracks hover and single selection over the node set.
//
// Hover and selection are independent: hovering another node never clears
// the selection. Clicking the selected node again toggles it off. Events are
// applied in arrival order from a single UI goroutine, so the last writer
// wins and nothing is queued.
package selection

// State holds at most one selected id and at most one hovered id. The empty
// string means none; catalog ids are never empty.
type State struct {
	selected string
	hovered  string
}

// Hover marks id as the node under the pointer.
func (s *State) Hover(id string) { s.hovered = id }

// Unhover clears the hovered node.
func (s *State) Unhover() { s.hovered = "" }

// Click toggles selection of id and reports whether id is selected after
// the click.
func (s *State) Click(id string) bool {
	if id == "" {
		return false
	}
	if s.selected == id {
		s.selected = ""
		return false
	}
	s.selected = id
	return true
}

// Select sets the selection without toggling.
func (s *State) Select(id string) { s.selected = id }

// Clear drops the selection.
func (s *State) Clear() { s.selected = "" }

// Selected returns the selected id, if any.
func (s State) Selected() (string, bool) { return s.selected, s.selected != "" }

// Hovered returns the hovered id, if any.
func (s State) Hovered() (string, bool) { return s.hovered, s.hovered != "" }

// IsSelected reports whether id is the selected node.
func (s State) IsSelected(id string) bool { return id != "" && s.selected == id }

// IsHovered reports whether id is the hovered node.
func (s State) IsHovered(id string) bool { return id != "" && s.hovered == id }

// Retain drops hover and selection that refer to ids no longer present.
// It reports whether the selection was dropped.
func (s *State) Retain(exists func(id string) bool) bool {
	if s.hovered != "" && !exists(s.hovered) {
		s.hovered = ""
	}
	if s.selected != "" && !exists(s.selected) {
		s.selected = ""
		return true
	}
	return false
}
