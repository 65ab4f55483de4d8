package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWindow realizes items first..last, each of the given size, starting at
// first*size.
func newWindow(first, last int, size float64) (*realizedElements, map[Component]int) {
	r := newRealizedElements()
	origin := map[Component]int{}
	for i := first; i <= last; i++ {
		el := &testElement{size: int(size)}
		origin[el] = i
		r.Add(i, el, float64(i)*size, size)
	}
	return r, origin
}

// recorder collects recycle and reindex callbacks.
type recorder struct {
	recycled []int
	moves    map[int]int // old index -> new index
}

func newRecorder() *recorder {
	return &recorder{moves: map[int]int{}}
}

func (rec *recorder) recycle(c Component, index int) {
	rec.recycled = append(rec.recycled, index)
}

func (rec *recorder) update(c Component, oldIndex, newIndex int) {
	rec.moves[oldIndex] = newIndex
}

func TestRealizedElementsAdd(t *testing.T) {
	t.Run("ExtendsBothEnds", func(t *testing.T) {
		r := newRealizedElements()
		a, b, c := &testElement{}, &testElement{}, &testElement{}
		r.Add(5, a, 50, 10)
		r.Add(6, b, 60, 10)
		r.Add(4, c, 40, 10)

		assert.Equal(t, 4, r.FirstIndex())
		assert.Equal(t, 6, r.LastIndex())
		assert.Equal(t, 40.0, r.StartU())
		assert.Equal(t, 70.0, r.EndU())
		assert.Same(t, c, r.Element(4))
		assert.Same(t, a, r.Element(5))
		assert.Same(t, b, r.Element(6))
	})

	t.Run("NonAdjacentPanics", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		err := recoverError(t, func() { r.Add(11, &testElement{}, 11, 1) })
		assert.ErrorIs(t, err, ErrNotSupported)
		assert.Equal(t, 9, r.LastIndex())
	})

	t.Run("NegativeIndexPanics", func(t *testing.T) {
		r := newRealizedElements()
		err := recoverError(t, func() { r.Add(-1, &testElement{}, 0, 1) })
		assert.ErrorIs(t, err, ErrArgumentRange)
	})

	t.Run("Empty", func(t *testing.T) {
		r := newRealizedElements()
		assert.Equal(t, -1, r.FirstIndex())
		assert.Equal(t, -1, r.LastIndex())
		assert.Nil(t, r.Element(0))
		assert.Equal(t, -1, r.IndexOf(&testElement{}))
		_, ok := r.EstimateElementSize()
		assert.False(t, ok)
	})
}

func TestRealizedElementsLookup(t *testing.T) {
	r, _ := newWindow(10, 14, 2)

	t.Run("ElementAt", func(t *testing.T) {
		tests := []struct {
			u     float64
			index int
			start float64
			ok    bool
		}{
			{20, 10, 20, true},
			{21.5, 10, 20, true},
			{22, 11, 22, true},
			{29.9, 14, 28, true},
			{30, -1, 0, false},
			{19, -1, 0, false},
		}
		for _, tt := range tests {
			index, start, ok := r.ElementAt(tt.u)
			if index != tt.index || start != tt.start || ok != tt.ok {
				t.Errorf("ElementAt(%v) = %d, %v, %v; want %d, %v, %v",
					tt.u, index, start, ok, tt.index, tt.start, tt.ok)
			}
		}
	})

	t.Run("GetOrEstimateElementU", func(t *testing.T) {
		tests := []struct {
			index int
			want  float64
		}{
			{12, 24},
			{10, 20},
			{5, 20 - 5*3},
			{15, 30},
			{20, 30 + 5*3},
		}
		for _, tt := range tests {
			got, ok := r.GetOrEstimateElementU(tt.index, 3)
			if !ok || got != tt.want {
				t.Errorf("GetOrEstimateElementU(%d) = %v, %v; want %v", tt.index, got, ok, tt.want)
			}
		}
	})

	t.Run("EstimateSkipsPlaceholders", func(t *testing.T) {
		w, _ := newWindow(0, 3, 4)
		w.ItemsInserted(2, 2, func(Component, int, int) {})

		size, ok := w.EstimateElementSize()
		require.True(t, ok)
		assert.Equal(t, 4.0, size)
		assert.Equal(t, 6, w.Count())
	})
}

func TestRealizedElementsRecycle(t *testing.T) {
	t.Run("Before", func(t *testing.T) {
		r, _ := newWindow(5, 14, 1)
		rec := newRecorder()
		r.RecycleElementsBefore(8, rec.recycle)

		assert.Equal(t, []int{5, 6, 7}, rec.recycled)
		assert.Equal(t, 8, r.FirstIndex())
		assert.Equal(t, 14, r.LastIndex())
		assert.Equal(t, 8.0, r.StartU())
	})

	t.Run("After", func(t *testing.T) {
		r, _ := newWindow(5, 14, 1)
		rec := newRecorder()
		r.RecycleElementsAfter(11, rec.recycle)

		assert.Equal(t, []int{12, 13, 14}, rec.recycled)
		assert.Equal(t, 5, r.FirstIndex())
		assert.Equal(t, 11, r.LastIndex())
		assert.Equal(t, 12.0, r.EndU())
	})

	t.Run("BeyondRangeRecyclesAll", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.RecycleElementsBefore(20, rec.recycle)

		assert.Len(t, rec.recycled, 5)
		assert.Equal(t, 0, r.Count())
		assert.Equal(t, -1, r.FirstIndex())
	})

	t.Run("Idempotent", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.RecycleAllElements(rec.recycle)
		r.RecycleAllElements(rec.recycle)
		r.RecycleElementsBefore(7, rec.recycle)
		r.RecycleElementsAfter(7, rec.recycle)

		assert.Equal(t, []int{5, 6, 7, 8, 9}, rec.recycled)
	})

	t.Run("OutsideRangeIsNoop", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.RecycleElementsBefore(5, rec.recycle)
		r.RecycleElementsAfter(9, rec.recycle)

		assert.Empty(t, rec.recycled)
		assert.Equal(t, 5, r.Count())
	})
}

func TestRealizedElementsInsert(t *testing.T) {
	t.Run("Inside", func(t *testing.T) {
		r, origin := newWindow(5, 14, 1)
		rec := newRecorder()
		r.ItemsInserted(7, 2, rec.update)

		assert.Equal(t, 5, r.FirstIndex())
		assert.Equal(t, 16, r.LastIndex())
		assert.Nil(t, r.Element(7))
		assert.Nil(t, r.Element(8))
		for i := 5; i <= 6; i++ {
			assert.Equal(t, i, origin[r.Element(i)], "index %d", i)
		}
		for i := 9; i <= 16; i++ {
			assert.Equal(t, i-2, origin[r.Element(i)], "index %d", i)
		}
		assert.Equal(t, map[int]int{7: 9, 8: 10, 9: 11, 10: 12, 11: 13, 12: 14, 13: 15, 14: 16}, rec.moves)
	})

	t.Run("BeforeShiftsWindow", func(t *testing.T) {
		r, origin := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsInserted(2, 3, rec.update)

		assert.Equal(t, 8, r.FirstIndex())
		assert.Equal(t, 12, r.LastIndex())
		assert.Equal(t, 5, origin[r.Element(8)])
		assert.Len(t, rec.moves, 5)
	})

	t.Run("AtFirstShiftsWindow", func(t *testing.T) {
		r, origin := newWindow(5, 9, 1)
		r.ItemsInserted(5, 1, func(Component, int, int) {})

		assert.Equal(t, 6, r.FirstIndex())
		assert.Equal(t, 5, origin[r.Element(6)])
	})

	t.Run("ShiftedWindowHasNoPosition", func(t *testing.T) {
		r, _ := newWindow(0, 4, 1)
		r.ItemsInserted(0, 1, func(Component, int, int) {})

		// Item 1 is the old item 0, still recorded at u=0 where the new
		// item 0 now lives.
		_, _, ok := r.ElementAt(0)
		assert.False(t, ok)
		_, ok = r.GetOrEstimateElementU(3, 1)
		assert.False(t, ok)
		assert.NotNil(t, r.Element(1))

		r.ResetForReuse()
		r.Add(0, &testElement{}, 0, 1)
		index, _, ok := r.ElementAt(0.5)
		assert.True(t, ok)
		assert.Equal(t, 0, index)
	})

	t.Run("InsideKeepsPosition", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		r.ItemsInserted(7, 2, func(Component, int, int) {})

		index, start, ok := r.ElementAt(5.5)
		assert.True(t, ok)
		assert.Equal(t, 5, index)
		assert.Equal(t, 5.0, start)
	})

	t.Run("AfterIsIgnored", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsInserted(10, 4, rec.update)

		assert.Equal(t, 9, r.LastIndex())
		assert.Empty(t, rec.moves)
	})

	t.Run("NegativeIndexPanics", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		err := recoverError(t, func() { r.ItemsInserted(-1, 1, func(Component, int, int) {}) })
		assert.ErrorIs(t, err, ErrArgumentRange)
	})
}

func TestRealizedElementsRemove(t *testing.T) {
	t.Run("Inside", func(t *testing.T) {
		r, origin := newWindow(5, 14, 1)
		rec := newRecorder()
		r.ItemsRemoved(7, 3, rec.update, rec.recycle)

		assert.Equal(t, []int{7, 8, 9}, rec.recycled)
		assert.Equal(t, 5, r.FirstIndex())
		assert.Equal(t, 11, r.LastIndex())
		for i := 7; i <= 11; i++ {
			assert.Equal(t, i+3, origin[r.Element(i)], "index %d", i)
		}
		assert.Equal(t, map[int]int{10: 7, 11: 8, 12: 9, 13: 10, 14: 11}, rec.moves)
	})

	t.Run("BeforeShiftsWindow", func(t *testing.T) {
		r, origin := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsRemoved(0, 3, rec.update, rec.recycle)

		assert.Empty(t, rec.recycled)
		assert.Equal(t, 2, r.FirstIndex())
		assert.Equal(t, 6, r.LastIndex())
		assert.Equal(t, 5, origin[r.Element(2)])
		_, _, ok := r.ElementAt(5)
		assert.False(t, ok)
	})

	t.Run("OverlappingStart", func(t *testing.T) {
		r, origin := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsRemoved(3, 4, rec.update, rec.recycle)

		assert.Equal(t, []int{5, 6}, rec.recycled)
		assert.Equal(t, 3, r.FirstIndex())
		assert.Equal(t, 5, r.LastIndex())
		assert.Equal(t, 7, origin[r.Element(3)])
		assert.Equal(t, map[int]int{7: 3, 8: 4, 9: 5}, rec.moves)
		_, ok := r.GetOrEstimateElementU(3, 1)
		assert.False(t, ok)
	})

	t.Run("OverlappingEnd", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsRemoved(8, 10, rec.update, rec.recycle)

		assert.Equal(t, []int{8, 9}, rec.recycled)
		assert.Equal(t, 7, r.LastIndex())
		assert.Empty(t, rec.moves)
	})

	t.Run("Everything", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsRemoved(0, 100, rec.update, rec.recycle)

		assert.Len(t, rec.recycled, 5)
		assert.Equal(t, 0, r.Count())
		assert.Equal(t, -1, r.FirstIndex())
	})

	t.Run("PlaceholdersAreNotRecycled", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		r.ItemsInserted(7, 2, func(Component, int, int) {})
		rec := newRecorder()
		r.ItemsRemoved(6, 4, rec.update, rec.recycle)

		// Slots 6..9 are item 6, two placeholders and old item 7.
		assert.Equal(t, []int{6, 9}, rec.recycled)
		assert.Equal(t, 7, r.LastIndex())
	})

	t.Run("AfterIsIgnored", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsRemoved(10, 2, rec.update, rec.recycle)

		assert.Empty(t, rec.recycled)
		assert.Equal(t, 9, r.LastIndex())
	})
}

func TestRealizedElementsReplace(t *testing.T) {
	t.Run("Inside", func(t *testing.T) {
		r, origin := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsReplaced(6, 2, rec.recycle)

		assert.Equal(t, []int{6, 7}, rec.recycled)
		assert.Equal(t, 5, r.FirstIndex())
		assert.Equal(t, 9, r.LastIndex())
		assert.Nil(t, r.Element(6))
		assert.Nil(t, r.Element(7))
		assert.Equal(t, 8, origin[r.Element(8)])
		// Placeholders keep their size, so later slots stay put.
		index, start, ok := r.ElementAt(8.5)
		assert.True(t, ok)
		assert.Equal(t, 8, index)
		assert.Equal(t, 8.0, start)
	})

	t.Run("Overlapping", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsReplaced(3, 3, rec.recycle)
		r.ItemsReplaced(9, 5, rec.recycle)

		assert.Equal(t, []int{5, 9}, rec.recycled)
		assert.Equal(t, 5, r.Count())
	})

	t.Run("OutsideIsIgnored", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		rec := newRecorder()
		r.ItemsReplaced(0, 5, rec.recycle)
		r.ItemsReplaced(10, 2, rec.recycle)

		assert.Empty(t, rec.recycled)
		_, _, ok := r.ElementAt(5)
		assert.True(t, ok)
	})

	t.Run("PlaceholdersAreNotRecycled", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		r.ItemsInserted(7, 1, func(Component, int, int) {})
		rec := newRecorder()
		r.ItemsReplaced(7, 2, rec.recycle)

		assert.Equal(t, []int{8}, rec.recycled)
	})

	t.Run("NegativeIndexPanics", func(t *testing.T) {
		r, _ := newWindow(5, 9, 1)
		err := recoverError(t, func() { r.ItemsReplaced(-1, 1, func(Component, int) {}) })
		assert.ErrorIs(t, err, ErrArgumentRange)
	})
}
