// Command vlist-tea hosts a VirtualList inside a Bubble Tea program. The
// list is laid out by its own LayoutManager and drawn into a Buffer, which
// is converted to styled text for the Bubble Tea view.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kungfusheep/tui"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Select   key.Binding
	Append   key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Append: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Append, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Select, k.Append, k.Delete, k.Quit},
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

type model struct {
	items  *tui.Observable[string]
	list   *tui.VirtualList[string]
	layout *tui.LayoutManager
	keys   keyMap
	help   help.Model
	next   int

	width, height int
}

func newModel(n int, cfg tui.Config) *model {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("row %d", i)
	}
	m := &model{
		items: tui.NewObservable(items...),
		keys:  defaultKeyMap(),
		help:  help.New(),
		next:  n,
	}
	m.list = tui.NewVirtualList(m.items, func(s string) string { return s }, cfg).
		Gutter(len(strconv.Itoa(n))).
		Border(tui.BorderRounded)
	m.layout = tui.NewLayoutManager(m.list, cfg)
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout.SetSize(m.width, max(1, m.height-2))
		// Settle the layout so cursor moves see a real viewport.
		m.layout.ExecuteLayoutPass()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.list.MoveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.list.MoveCursor(1)
		case key.Matches(msg, m.keys.PageUp):
			m.list.PageUp()
		case key.Matches(msg, m.keys.PageDown):
			m.list.PageDown()
		case key.Matches(msg, m.keys.Top):
			m.list.First()
		case key.Matches(msg, m.keys.Bottom):
			m.list.Last()
		case key.Matches(msg, m.keys.Select):
			m.list.ToggleSelected()
		case key.Matches(msg, m.keys.Append):
			m.items.Add(fmt.Sprintf("row %d", m.next))
			m.next++
		case key.Matches(msg, m.keys.Delete):
			if c := m.list.Cursor(); c >= 0 {
				m.items.RemoveAt(c)
			}
		}
	}
	return m, nil
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.layout.NeedsLayout() {
		m.layout.ExecuteLayoutPass()
	}

	h := max(1, m.height-2)
	buf := tui.GetBuffer(m.width, h)
	defer tui.PutBuffer(buf)
	m.list.Render(buf, 0, 0)

	first, last := m.list.VisibleRange()
	created, reused, _ := m.list.Factory().Stats()
	status := fmt.Sprintf("%d items · realized %d-%d · created %d reused %d · %s",
		m.items.Len(), first, last, created, reused, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("virtual list"),
		renderBuffer(buf),
		statusStyle.Render(status),
	)
}

// renderBuffer converts a buffer to text, grouping runs of cells that share
// a style into a single lipgloss render.
func renderBuffer(buf *tui.Buffer) string {
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < buf.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		cur := buf.Get(0, y).Style
		for x := 0; x < buf.Width(); x++ {
			c := buf.Get(x, y)
			if c.Rune == 0 {
				continue
			}
			if c.Style != cur {
				sb.WriteString(lipglossStyle(cur).Render(run.String()))
				run.Reset()
				cur = c.Style
			}
			run.WriteRune(c.Rune)
		}
		sb.WriteString(lipglossStyle(cur).Render(run.String()))
		run.Reset()
	}
	return sb.String()
}

func lipglossStyle(s tui.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := lipglossColor(s.FG); ok {
		st = st.Foreground(c)
	}
	if c, ok := lipglossColor(s.BG); ok {
		st = st.Background(c)
	}
	return st.
		Bold(s.Attr.Has(tui.AttrBold)).
		Faint(s.Attr.Has(tui.AttrDim)).
		Italic(s.Attr.Has(tui.AttrItalic)).
		Underline(s.Attr.Has(tui.AttrUnderline)).
		Reverse(s.Attr.Has(tui.AttrInverse))
}

func lipglossColor(c tui.Color) (lipgloss.Color, bool) {
	switch c.Mode {
	case tui.Color16, tui.Color256:
		return lipgloss.Color(strconv.Itoa(int(c.Index))), true
	case tui.ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	}
	return "", false
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	count := flag.Int("n", 10000, "number of items")
	flag.Parse()

	cfg, err := tui.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	closer, err := tui.OpenLog(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	m := newModel(*count, cfg)
	defer m.list.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
