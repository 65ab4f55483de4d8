package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"
)

// App runs a component tree full screen: it owns the terminal, lays the
// tree out, renders it and dispatches key presses to handlers. Handlers run
// on the goroutine that called Run, which also owns the tree.
type App struct {
	screen *Screen
	root   Component
	layout *LayoutManager

	handlers map[string]func()
	input    io.Reader

	stopOnce sync.Once
	stop     chan struct{}
}

// NewApp creates an application around root.
func NewApp(root Component, cfg Config) *App {
	return &App{
		screen:   NewScreen(nil),
		root:     root,
		layout:   NewLayoutManager(root, cfg),
		handlers: make(map[string]func()),
		input:    os.Stdin,
		stop:     make(chan struct{}),
	}
}

// Screen returns the screen.
func (a *App) Screen() *Screen {
	return a.screen
}

// Layout returns the layout manager driving the tree.
func (a *App) Layout() *LayoutManager {
	return a.layout
}

// Handle registers a handler for a key. Keys are single characters ("j",
// "G") or names in angle brackets: <Up>, <Down>, <Left>, <Right>, <PgUp>,
// <PgDn>, <Home>, <End>, <Enter>, <Space>, <Tab>, <Esc>, <C-a> .. <C-z>.
func (a *App) Handle(key string, handler func()) *App {
	a.handlers[key] = handler
	return a
}

// Stop ends Run. Safe to call from any goroutine, including handlers.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

// Run takes over the terminal and processes input until ctx is done or Stop
// is called.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.EnterRawMode(); err != nil {
		return err
	}
	defer a.screen.ExitRawMode()
	return a.loop(ctx)
}

// loop renders and dispatches keys until ctx is done or Stop is called. It
// also ends at input EOF. Returning closes stop so the reader exits.
func (a *App) loop(ctx context.Context) error {
	defer a.Stop()

	keys := make(chan string, 16)
	errs := make(chan error, 1)
	go a.readInput(keys, errs)

	a.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.stop:
			return nil
		case err := <-errs:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		case key := <-keys:
			if h, ok := a.handlers[key]; ok {
				h()
			}
			a.render()
		case <-a.screen.ResizeChan():
			a.render()
		}
	}
}

// readInput forwards decoded keys until the reader fails.
func (a *App) readInput(keys chan<- string, errs chan<- error) {
	buf := make([]byte, 256)
	for {
		n, err := a.input.Read(buf)
		for _, k := range parseKeys(buf[:n]) {
			select {
			case keys <- k:
			case <-a.stop:
				return
			}
		}
		if err != nil {
			errs <- err
			return
		}
	}
}

// render lays the tree out if needed and draws it.
func (a *App) render() {
	start := time.Now()
	size := a.screen.Size()
	a.layout.SetSize(size.Width, size.Height)
	if a.layout.NeedsLayout() {
		a.layout.ExecuteLayoutPass()
	}

	buf := GetBuffer(size.Width, size.Height)
	a.root.Render(buf, 0, 0)
	a.copyToScreen(buf, size)
	PutBuffer(buf)
	a.screen.Flush()

	logger.Debug("render", "took", time.Since(start), "passes", a.layout.Passes())
}

// copyToScreen copies pool buffer to screen's back buffer.
func (a *App) copyToScreen(src *Buffer, size Size) {
	dst := a.screen.Buffer()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			if c := src.Get(x, y); c != dst.Get(x, y) {
				dst.Set(x, y, c)
			}
		}
	}
}

var escapeKeys = map[string]string{
	"[A":  "<Up>",
	"[B":  "<Down>",
	"[C":  "<Right>",
	"[D":  "<Left>",
	"[H":  "<Home>",
	"[F":  "<End>",
	"[1~": "<Home>",
	"[4~": "<End>",
	"[5~": "<PgUp>",
	"[6~": "<PgDn>",
	"OA":  "<Up>",
	"OB":  "<Down>",
	"OH":  "<Home>",
	"OF":  "<End>",
}

// parseKeys decodes raw terminal input into key names.
func parseKeys(b []byte) []string {
	var keys []string
	for len(b) > 0 {
		if b[0] == 0x1b {
			if k, n := parseEscape(b[1:]); n > 0 {
				keys = append(keys, k)
				b = b[1+n:]
				continue
			}
			keys = append(keys, "<Esc>")
			b = b[1:]
			continue
		}
		switch c := b[0]; {
		case c == '\r' || c == '\n':
			keys = append(keys, "<Enter>")
		case c == '\t':
			keys = append(keys, "<Tab>")
		case c == ' ':
			keys = append(keys, "<Space>")
		case c == 0x7f:
			keys = append(keys, "<BS>")
		case c >= 1 && c <= 26:
			keys = append(keys, "<C-"+string(rune('a'+c-1))+">")
		default:
			r, n := utf8.DecodeRune(b)
			keys = append(keys, string(r))
			b = b[n:]
			continue
		}
		b = b[1:]
	}
	return keys
}

// parseEscape matches the bytes after ESC against known sequences and
// returns the key and the number of bytes consumed.
func parseEscape(b []byte) (string, int) {
	for n := 2; n <= 3 && n <= len(b); n++ {
		if k, ok := escapeKeys[string(b[:n])]; ok {
			return k, n
		}
	}
	return "", 0
}
