package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testElement is an item element with a fixed size along the scrolling
// axis. It takes whatever cross size it is offered.
type testElement struct {
	Base
	size     int
	item     int
	measures int
}

func (e *testElement) SetConstraints(width, height int) {
	e.Base.SetConstraints(width, height)
	e.measures++
	e.width, e.height = width, height
	if width == 0 {
		e.width = e.size
	}
	if height == 0 {
		e.height = e.size
	}
}

func (e *testElement) Render(buf *Buffer, x, y int) {}

// bindCounts records every binder call.
type bindCounts struct {
	realized, updated, unrealized int
}

func (c *bindCounts) binder() BinderFuncs[int] {
	return BinderFuncs[int]{
		OnRealize: func(el Component, item, index int) {
			c.realized++
			el.(*testElement).item = item
		},
		OnUpdateIndex: func(Component, int) { c.updated++ },
		OnUnrealize:   func(Component) { c.unrealized++ },
	}
}

type harness struct {
	items     *Observable[int]
	presenter *Presenter[int]
	factory   *PoolingFactory[int]
	viewer    *ScrollViewer
	layout    *LayoutManager
	counts    *bindCounts
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Scrollbar = false
	return cfg
}

// newHarness builds a presenter over n items of the given size inside a
// scroll viewer of width x height cells, and runs the first layout pass.
func newHarness(t *testing.T, n, size, width, height int) *harness {
	t.Helper()
	values := make([]int, n)
	for i := range values {
		values[i] = i
	}
	h := &harness{
		items:  NewObservable(values...),
		counts: &bindCounts{},
	}
	h.factory = NewPoolingFactory(func(item, index int) Component {
		return &testElement{size: size}
	})
	cfg := testConfig()
	h.presenter = NewPresenter[int](cfg).
		SetFactory(h.factory).
		SetBinder(h.counts.binder())
	h.presenter.SetSource(h.items)
	h.viewer = NewScrollViewer(h.presenter, cfg)
	h.layout = NewLayoutManager(h.viewer, cfg)
	h.layout.SetSize(width, height)
	h.layout.ExecuteLayoutPass()
	return h
}

func (h *harness) scrollTo(off float64) {
	h.viewer.ScrollTo(off)
	h.layout.ExecuteLayoutPass()
}

func (h *harness) rangeOf() [2]int {
	first, last := h.presenter.RealizedRange()
	return [2]int{first, last}
}

// recoverError runs fn and returns the error it panicked with.
func recoverError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		e, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		err = e
	}()
	fn()
	return nil
}

func TestPresenterMeasure(t *testing.T) {
	t.Run("RealizesOnlyViewport", func(t *testing.T) {
		h := newHarness(t, 1000, 1, 20, 10)

		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		created, _, _ := h.factory.Stats()
		assert.Equal(t, 10, created)
		assert.Equal(t, 10, h.counts.realized)
		assert.Len(t, h.presenter.Children(), 10)
	})

	t.Run("ExtentConvergesToMeasuredSize", func(t *testing.T) {
		h := newHarness(t, 100, 2, 20, 10)

		assert.Equal(t, 200.0, h.presenter.Extent())
		assert.Equal(t, 200.0, h.viewer.Extent())
		assert.Equal(t, [2]int{0, 4}, h.rangeOf())
	})

	t.Run("ExtentIncludesRealizedTail", func(t *testing.T) {
		h := newHarness(t, 5, 1, 20, 10)

		assert.Equal(t, [2]int{0, 4}, h.rangeOf())
		assert.Equal(t, 5.0, h.presenter.Extent())
	})

	t.Run("ElementsAreStacked", func(t *testing.T) {
		h := newHarness(t, 100, 2, 20, 10)

		for i := 0; i <= 4; i++ {
			el := h.presenter.ElementAt(i)
			require.NotNil(t, el, "element %d", i)
			b := el.Bounds()
			if b.Y != float64(i*2) || b.Height != 2 || b.Width != 20 {
				t.Errorf("element %d: got bounds %+v", i, b)
			}
			assert.Equal(t, i, el.(*testElement).item)
		}
	})

	t.Run("RemeasureWithoutChangesDoesNotRebind", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		first := h.presenter.ElementAt(0).(*testElement)
		measures := first.measures

		h.layout.InvalidateMeasure(h.presenter)
		h.layout.ExecuteLayoutPass()

		assert.Equal(t, 10, h.counts.realized)
		assert.Equal(t, 0, h.counts.unrealized)
		assert.Equal(t, measures, first.measures, "valid element was measured again")
		assert.Same(t, first, h.presenter.ElementAt(0))
	})

	t.Run("ScrollByOneRecyclesOne", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		kept := h.presenter.ElementAt(5)

		h.scrollTo(1)

		assert.Equal(t, [2]int{1, 10}, h.rangeOf())
		assert.Equal(t, 11, h.counts.realized)
		assert.Equal(t, 1, h.counts.unrealized)
		assert.Same(t, kept, h.presenter.ElementAt(5))
		created, reused, _ := h.factory.Stats()
		assert.Equal(t, 10, created)
		assert.Equal(t, 1, reused)
	})

	t.Run("DistantScrollRecyclesAll", func(t *testing.T) {
		h := newHarness(t, 1000, 1, 20, 10)

		h.scrollTo(500)

		assert.Equal(t, [2]int{500, 509}, h.rangeOf())
		assert.Equal(t, 10, h.counts.unrealized)
		created, reused, pooled := h.factory.Stats()
		assert.Equal(t, 10, created)
		assert.Equal(t, 10, reused)
		assert.Equal(t, 0, pooled)
		assert.Equal(t, 500.0, h.presenter.ElementAt(500).Bounds().Y)
	})

	t.Run("ScrollBackReusesPool", func(t *testing.T) {
		h := newHarness(t, 1000, 1, 20, 10)
		h.scrollTo(500)
		h.scrollTo(0)

		assert.Equal(t, [2]int{0, 9}, h.rangeOf())
		created, _, _ := h.factory.Stats()
		assert.Equal(t, 10, created)
		assert.Equal(t, 3, h.presenter.ElementAt(3).(*testElement).item)
	})

	t.Run("RecycledElementsAreHidden", func(t *testing.T) {
		h := newHarness(t, 1000, 1, 20, 10)
		old := h.presenter.ElementAt(1)
		h.items.RemoveRange(0, 3)

		assert.True(t, old.Hidden())
		_, _, pooled := h.factory.Stats()
		assert.Equal(t, 3, pooled)
		visible := 0
		for _, c := range h.presenter.Children() {
			if !c.Hidden() {
				visible++
			}
		}
		assert.Equal(t, 7, visible)
	})

	t.Run("UnchangedViewportSkipsMeasure", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.presenter.OnViewportChanged(h.presenter.viewport)

		assert.False(t, h.layout.NeedsLayout())
	})

	t.Run("ViewportInsideWindowRemeasures", func(t *testing.T) {
		h := newHarness(t, 100, 1, 20, 10)
		h.presenter.OnViewportChanged(Rect{Y: 2, Width: 20, Height: 5})

		assert.True(t, h.layout.NeedsLayout())
	})

	t.Run("ShrinkingViewportRecycles", func(t *testing.T) {
		h := newHarness(t, 1000, 1, 20, 20)
		require.Equal(t, [2]int{0, 19}, h.rangeOf())

		h.layout.SetSize(20, 3)
		h.layout.ExecuteLayoutPass()

		assert.Equal(t, [2]int{0, 2}, h.rangeOf())
		assert.Equal(t, 17, h.counts.unrealized)
		_, _, pooled := h.factory.Stats()
		assert.Equal(t, 17, pooled)
	})

	t.Run("EmptySource", func(t *testing.T) {
		p := NewPresenter[int](testConfig()).SetSource(NewObservable[int]())
		p.SetConstraints(20, 0)

		w, hgt := p.Size()
		assert.Equal(t, 0, w)
		assert.Equal(t, 0, hgt)
		first, last := p.RealizedRange()
		assert.Equal(t, -1, first)
		assert.Equal(t, -1, last)
	})

	t.Run("NilSource", func(t *testing.T) {
		p := NewPresenter[int](testConfig())
		p.SetConstraints(20, 0)
		assert.Equal(t, 0.0, p.Extent())
	})

	t.Run("MissingFactoryPanics", func(t *testing.T) {
		p := NewPresenter[int](testConfig()).SetSource(Slice[int]{1, 2, 3})
		err := recoverError(t, func() { p.SetConstraints(20, 0) })
		assert.ErrorIs(t, err, ErrNoElementFactory)
	})

	t.Run("ClearPanics", func(t *testing.T) {
		p := NewPresenter[int](testConfig())
		err := recoverError(t, func() { p.Clear() })
		assert.ErrorIs(t, err, ErrNotSupported)
	})

	t.Run("PlainSliceSource", func(t *testing.T) {
		p := NewPresenter[int](testConfig()).
			SetFactory(NewPoolingFactory(func(item, index int) Component {
				return &testElement{size: 1}
			})).
			SetSource(Slice[int]{1, 2, 3})
		p.SetConstraints(20, 0)

		first, last := p.RealizedRange()
		assert.Equal(t, 0, first)
		// Without a viewport only the first item is generated.
		assert.Equal(t, 0, last)
	})
}

func TestPresenterHorizontal(t *testing.T) {
	cfg := testConfig()
	cfg.Direction = "horizontal"

	p := NewPresenter[int](cfg).
		SetFactory(NewPoolingFactory(func(item, index int) Component {
			return &testElement{size: 4}
		})).
		SetSource(NewObservable(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	viewer := NewScrollViewer(p, cfg)
	layout := NewLayoutManager(viewer, cfg)
	layout.SetSize(10, 3)
	layout.ExecuteLayoutPass()

	first, last := p.RealizedRange()
	assert.Equal(t, 0, first)
	assert.Equal(t, 2, last)
	assert.Equal(t, 40.0, p.Extent())
	assert.Equal(t, 8.0, p.ElementAt(2).Bounds().X)
	assert.Equal(t, 3.0, p.ElementAt(2).Bounds().Height)
}

// fixedLookup positions items of varying size exactly.
type fixedLookup struct {
	starts []float64
}

func (l fixedLookup) ElementAt(u float64) (int, float64) {
	for i := len(l.starts) - 1; i >= 0; i-- {
		if u >= l.starts[i] {
			return i, l.starts[i]
		}
	}
	return -1, 0
}

func (l fixedLookup) ElementPosition(index int) (float64, bool) {
	if index < 0 || index >= len(l.starts) {
		return 0, false
	}
	return l.starts[index], true
}

func TestPresenterPositionLookup(t *testing.T) {
	h := newHarness(t, 100, 1, 20, 10)
	starts := make([]float64, 100)
	for i := range starts {
		starts[i] = float64(i)
	}
	h.presenter.SetPositionLookup(fixedLookup{starts: starts})

	h.scrollTo(42.5)

	first, _ := h.presenter.RealizedRange()
	assert.Equal(t, 42, first)
	assert.Equal(t, 42.0, h.presenter.ElementAt(42).Bounds().Y)
}
