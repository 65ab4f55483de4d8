package tui

import "errors"

// Contract violations panic with an error wrapping one of these sentinels, so
// a recovering caller can test the value with errors.Is.
var (
	// ErrNoElementFactory is raised when a presenter has to realize an item
	// before an ElementFactory was assigned.
	ErrNoElementFactory = errors.New("tui: no element factory set")

	// ErrNotSupported is raised for structural operations the realized
	// window refuses, such as resetting a presenter's children or adding an
	// element that is not adjacent to the window.
	ErrNotSupported = errors.New("tui: operation not supported")

	// ErrArgumentRange is raised for negative or otherwise impossible item
	// indices.
	ErrArgumentRange = errors.New("tui: argument out of range")
)
