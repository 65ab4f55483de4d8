package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Screen manages the terminal display with double buffering and diff-based updates.
type Screen struct {
	front  *Buffer   // What's currently displayed
	back   *Buffer   // What we're drawing to
	writer io.Writer // Output destination (usually os.Stdout)
	fd     int       // File descriptor for terminal operations

	width  int
	height int

	// Terminal state
	origState *term.State
	inRawMode bool

	// Resize handling
	resizeChan chan Size
	sigChan    chan os.Signal

	// Rendering state
	lastStyle Style        // last SGR state written
	buf       bytes.Buffer // frame output
	scratch   [64]byte

	// Protects buffer access during resize
	mu sync.Mutex
}

// Size represents dimensions.
type Size struct {
	Width  int
	Height int
}

// NewScreen creates a new screen writing to the given writer.
// Pass nil to use os.Stdout.
func NewScreen(w io.Writer) *Screen {
	if w == nil {
		w = os.Stdout
	}

	fd := int(os.Stdout.Fd())
	width, height, err := terminalSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	return &Screen{
		front:      NewBuffer(width, height),
		back:       NewBuffer(width, height),
		writer:     w,
		fd:         fd,
		width:      width,
		height:     height,
		resizeChan: make(chan Size, 1),
		sigChan:    make(chan os.Signal, 1),
		lastStyle:  DefaultStyle(),
	}
}

// terminalSize returns the current terminal dimensions.
func terminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// IsTerminal reports whether stdin and stdout are both terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Size returns the current screen dimensions.
func (s *Screen) Size() Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Size{Width: s.width, Height: s.height}
}

// Buffer returns the back buffer for drawing.
func (s *Screen) Buffer() *Buffer {
	return s.back
}

// ResizeChan returns a channel that receives size updates on terminal resize.
func (s *Screen) ResizeChan() <-chan Size {
	return s.resizeChan
}

// EnterRawMode puts the terminal into raw mode on the alternate screen.
func (s *Screen) EnterRawMode() error {
	if s.inRawMode {
		return nil
	}

	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	s.origState = state
	s.inRawMode = true

	signal.Notify(s.sigChan, syscall.SIGWINCH)
	go s.handleSignals()

	s.writeString("\x1b[?1049h") // Enter alternate screen
	s.writeString("\x1b[2J")     // Clear screen (ensures front buffer matches actual screen)
	s.writeString("\x1b[H")      // Move cursor to home position
	s.writeString("\x1b[?25l")   // Hide cursor
	return nil
}

// ExitRawMode restores the terminal to its original state.
func (s *Screen) ExitRawMode() error {
	if !s.inRawMode {
		return nil
	}

	s.writeString("\x1b[0m")     // Reset attributes
	s.writeString("\x1b[?25h")   // Show cursor
	s.writeString("\x1b[?1049l") // Exit alternate screen

	signal.Stop(s.sigChan)
	close(s.sigChan)

	s.inRawMode = false
	if s.origState != nil {
		if err := term.Restore(int(os.Stdin.Fd()), s.origState); err != nil {
			return fmt.Errorf("failed to restore terminal: %w", err)
		}
	}
	return nil
}

func (s *Screen) handleSignals() {
	for range s.sigChan {
		width, height, err := terminalSize(s.fd)
		if err != nil {
			continue
		}
		s.mu.Lock()
		changed := width != s.width || height != s.height
		if changed {
			s.width, s.height = width, height
			s.front.Resize(width, height)
			s.back.Resize(width, height)
			s.front.Clear()
			s.back.Clear()
			s.writeString("\x1b[2J")
		}
		s.mu.Unlock()
		if changed {
			select {
			case s.resizeChan <- Size{Width: width, Height: height}:
			default:
			}
		}
	}
}

// Flush writes the cells that differ between the back and front buffers.
// Rows that were not written since the last flush are skipped.
func (s *Screen) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	cursorX, cursorY := -1, -1
	changed := false

	for y := 0; y < s.height; y++ {
		if !s.back.RowDirty(y) {
			continue
		}
		for x := 0; x < s.width; x++ {
			cell := s.back.Get(x, y)
			if cell == s.front.Get(x, y) {
				continue
			}
			s.front.Set(x, y, cell)
			// Second half of a wide character; the terminal draws it.
			if cell.Rune == 0 {
				continue
			}
			changed = true

			if cursorX != x || cursorY != y {
				s.buf.Write(appendCursorMove(s.scratch[:0], x, y))
			}
			s.writeCell(cell)

			rw := runewidth.RuneWidth(cell.Rune)
			if rw == 0 {
				rw = 1
			}
			cursorX, cursorY = x+rw, y
		}
	}

	if changed {
		s.buf.WriteString("\x1b[0m")
		s.lastStyle = DefaultStyle()
		s.writer.Write(s.buf.Bytes())
	}
	s.back.ClearDirtyFlags()
}

func appendCursorMove(b []byte, x, y int) []byte {
	b = append(b, "\x1b["...)
	b = strconv.AppendInt(b, int64(y+1), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(x+1), 10)
	return append(b, 'H')
}

// writeCell emits an SGR sequence only when the style differs from the
// previous cell.
func (s *Screen) writeCell(cell Cell) {
	if cell.Style != s.lastStyle {
		s.buf.Write(cell.Style.appendSGR(s.scratch[:0]))
		s.lastStyle = cell.Style
	}
	s.buf.WriteRune(cell.Rune)
}

// writeString is a helper to write a string directly to the terminal.
func (s *Screen) writeString(str string) {
	io.WriteString(s.writer, str)
}

// Clear clears the back buffer.
func (s *Screen) Clear() {
	s.back.Clear()
}
