package tui

import "slices"

// SelectionModel tracks selected item indices and keeps them pointing at
// the same items as the collection changes.
type SelectionModel struct {
	selected map[int]struct{}
	multi    bool
}

// NewSelectionModel creates an empty selection. With multi false, selecting
// an index replaces the previous selection.
func NewSelectionModel(multi bool) *SelectionModel {
	return &SelectionModel{selected: make(map[int]struct{}), multi: multi}
}

// IsSelected implements Selection.
func (s *SelectionModel) IsSelected(index int) bool {
	_, ok := s.selected[index]
	return ok
}

// Select adds index to the selection.
func (s *SelectionModel) Select(index int) {
	if !s.multi {
		clear(s.selected)
	}
	s.selected[index] = struct{}{}
}

// Deselect removes index from the selection.
func (s *SelectionModel) Deselect(index int) {
	delete(s.selected, index)
}

// Toggle flips the selection state of index.
func (s *SelectionModel) Toggle(index int) {
	if s.IsSelected(index) {
		s.Deselect(index)
		return
	}
	s.Select(index)
}

// Clear empties the selection.
func (s *SelectionModel) Clear() {
	clear(s.selected)
}

// Len returns the number of selected indices.
func (s *SelectionModel) Len() int {
	return len(s.selected)
}

// Indices returns the selected indices in ascending order.
func (s *SelectionModel) Indices() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// ItemsInserted shifts selected indices at or after index by count.
func (s *SelectionModel) ItemsInserted(index, count int) {
	s.remap(func(i int) (int, bool) {
		if i >= index {
			return i + count, true
		}
		return i, true
	})
}

// ItemsRemoved drops selected indices inside the removed range and shifts
// the ones after it.
func (s *SelectionModel) ItemsRemoved(index, count int) {
	s.remap(func(i int) (int, bool) {
		switch {
		case i < index:
			return i, true
		case i < index+count:
			return 0, false
		default:
			return i - count, true
		}
	})
}

func (s *SelectionModel) remap(fn func(int) (int, bool)) {
	next := make(map[int]struct{}, len(s.selected))
	for i := range s.selected {
		if j, ok := fn(i); ok {
			next[j] = struct{}{}
		}
	}
	s.selected = next
}
