package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenterItemsChanged(t *testing.T) {
	t.Run("InsertInsideWindow", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		moved := h.presenter.ElementAt(5)
		kept := h.presenter.ElementAt(4)

		h.items.InsertRange(5, -1, -2)

		assert.True(t, h.layout.NeedsLayout())
		assert.Equal(t, [2]int{0, 11}, h.rangeOf())
		assert.Nil(t, h.presenter.ElementAt(5))
		assert.Nil(t, h.presenter.ElementAt(6))
		assert.Same(t, moved, h.presenter.ElementAt(7))
		assert.Same(t, kept, h.presenter.ElementAt(4))
		assert.Equal(t, 5, h.counts.updated)
		assert.Equal(t, 10, h.counts.realized)

		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		assert.Same(t, moved, h.presenter.ElementAt(7))
		assert.Equal(t, -1, h.presenter.ElementAt(5).(*testElement).item)
		assert.Equal(t, -2, h.presenter.ElementAt(6).(*testElement).item)
		// Items 8 and 9 of the old window fell past the viewport.
		assert.Equal(t, 2, h.counts.unrealized)
		assert.Equal(t, 12, h.counts.realized)
	})

	t.Run("InsertBeforeWindow", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.scrollTo(50)
		el := h.presenter.ElementAt(50)

		h.items.InsertRange(10, 1, 2, 3)

		assert.Equal(t, [2]int{53, 62}, h.rangeOf())
		assert.Same(t, el, h.presenter.ElementAt(53))
		assert.Equal(t, 50, el.(*testElement).item)

		h.layout.ExecuteLayoutPass()

		assert.Equal(t, 50.0, h.viewer.Offset())
		assert.Equal(t, [2]int{50, 59}, h.rangeOf())
		assert.Equal(t, 47, h.presenter.ElementAt(50).(*testElement).item)
		assert.Equal(t, 50.0, h.presenter.ElementAt(50).Bounds().Y)
		assert.Same(t, el, h.presenter.ElementAt(53))
	})

	t.Run("InsertAtTop", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		top := h.presenter.ElementAt(0)

		h.items.Insert(0, -1)
		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		first := h.presenter.ElementAt(0)
		assert.Equal(t, -1, first.(*testElement).item)
		assert.Equal(t, 0.0, first.Bounds().Y)
		assert.Same(t, top, h.presenter.ElementAt(1))
		assert.Equal(t, 1.0, top.Bounds().Y)
		// Only the old item 9 fell out of the window.
		assert.Equal(t, 1, h.counts.unrealized)
	})

	t.Run("RemoveBeforeWindow", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.scrollTo(50)

		h.items.RemoveRange(10, 3)
		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{50, 59}, h.rangeOf())
		assert.Equal(t, 53, h.presenter.ElementAt(50).(*testElement).item)
		assert.Equal(t, 50.0, h.presenter.ElementAt(50).Bounds().Y)
	})

	t.Run("RemoveOverlappingWindowStart", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.scrollTo(50)

		h.items.RemoveRange(48, 4)
		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{50, 59}, h.rangeOf())
		for i := 50; i <= 59; i++ {
			el := h.presenter.ElementAt(i)
			assert.Equal(t, i+4, el.(*testElement).item, "index %d", i)
			assert.Equal(t, float64(i), el.Bounds().Y, "index %d", i)
		}
	})

	t.Run("InsertAfterWindow", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.items.Add(100, 101)

		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		assert.Equal(t, 0, h.counts.updated)
		assert.True(t, h.layout.NeedsLayout())

		h.layout.ExecuteLayoutPass()
		assert.Equal(t, 102.0, h.presenter.Extent())
	})

	t.Run("RemoveInsideWindow", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		moved := h.presenter.ElementAt(5)

		h.items.RemoveRange(2, 3)

		assert.Equal(t, 3, h.counts.unrealized)
		assert.Equal(t, [2]int{0, 6}, h.rangeOf())
		assert.Same(t, moved, h.presenter.ElementAt(2))

		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		created, reused, pooled := h.factory.Stats()
		assert.Equal(t, 10, created)
		assert.Equal(t, 3, reused)
		assert.Equal(t, 0, pooled)
		assert.Equal(t, 9, h.presenter.ElementAt(6).(*testElement).item)
		assert.Equal(t, 97.0, h.presenter.Extent())
	})

	t.Run("RemoveEverything", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.items.RemoveRange(0, 100)

		assert.Equal(t, [2]int{-1, -1}, h.rangeOf())
		assert.Equal(t, 10, h.counts.unrealized)

		h.layout.ExecuteLayoutPass()
		assert.Equal(t, 0.0, h.presenter.Extent())
	})

	t.Run("Replace", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		before := h.counts.realized

		h.items.Update(3, func(v *int) { *v = 300 })

		assert.Nil(t, h.presenter.ElementAt(3))
		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		assert.Equal(t, 1, h.counts.unrealized)

		h.layout.ExecuteLayoutPass()

		assert.Equal(t, before+1, h.counts.realized)
		assert.Equal(t, 300, h.presenter.ElementAt(3).(*testElement).item)
		assert.Equal(t, 0, h.counts.updated)
	})

	t.Run("ReplaceFirstRealized", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)

		h.items.Update(0, func(v *int) { *v = 42 })
		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		assert.Equal(t, 42, h.presenter.ElementAt(0).(*testElement).item)
		assert.Equal(t, 1, h.presenter.ElementAt(1).(*testElement).item)
	})

	t.Run("ReplaceOutsideWindow", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.scrollTo(50)
		unrealized := h.counts.unrealized

		h.items.Update(10, func(v *int) { *v = 1000 })

		assert.Equal(t, 0, h.counts.updated)
		assert.Equal(t, unrealized, h.counts.unrealized)
		assert.Equal(t, [2]int{50, 59}, h.rangeOf())
		assert.True(t, h.layout.NeedsLayout())
	})

	t.Run("Reset", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.scrollTo(40)

		h.items.Set([]int{7, 8, 9})

		assert.Equal(t, [2]int{-1, -1}, h.rangeOf())
		assert.Equal(t, 0.0, h.presenter.Extent())

		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{0, 2}, h.rangeOf())
		assert.Equal(t, 0.0, h.viewer.Offset())
		assert.Equal(t, 7, h.presenter.ElementAt(0).(*testElement).item)
	})

	t.Run("UnsubscribedAfterClose", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.presenter.Close()

		h.items.RemoveRange(0, 5)

		assert.Equal(t, 0, h.counts.unrealized)
		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
	})
}
