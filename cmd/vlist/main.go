// Command vlist browses a large generated list with the virtualizing
// presenter. Only the visible rows are ever built.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/kungfusheep/tui"
)

type entry struct {
	ID   int
	Name string
	Size int
}

type hint struct{ key, help string }

var hints = []hint{
	{"j/k", "move"},
	{"space", "select"},
	{"a", "append"},
	{"i", "insert"},
	{"d", "delete"},
	{"r", "reset"},
	{"q", "quit"},
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	count := flag.Int("n", 100000, "number of items")
	flag.Parse()

	if !tui.IsTerminal() {
		log.Fatal("vlist needs an interactive terminal")
	}

	cfg, err := tui.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	closer, err := tui.OpenLog(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	items := tui.NewObservable(generate(0, *count)...)
	next := *count

	list := tui.NewVirtualList(items, func(e entry) string {
		return fmt.Sprintf("%-24s %8d bytes", e.Name, e.Size)
	}, cfg).
		Gutter(len(fmt.Sprint(*count))).
		Border(tui.BorderRounded).
		Grow(1)
	defer list.Close()
	list.Viewer().SetScrollbarStyle(
		tui.DefaultStyle().Foreground(tui.BrightBlack),
		tui.DefaultStyle().Foreground(tui.Cyan),
	)

	header := tui.HStack().Gap(2).AddFrom(tui.MapIndex(hints, func(_ int, h hint) tui.Component {
		return tui.HStack(tui.Text(h.key).Bold(), tui.Text(" "+h.help).Dim())
	}))
	status := tui.Text("").Dim()
	root := tui.VStack(header, list, status)
	defer tui.ReleaseTree(root)

	app := tui.NewApp(root, cfg)

	updateStatus := func() {
		first, last := list.VisibleRange()
		created, reused, pooled := list.Factory().Stats()
		status.SetText(fmt.Sprintf("%d items  cursor %d  realized %d..%d  created %d reused %d pooled %d  selected %d",
			items.Len(), list.Cursor(), first, last, created, reused, pooled, list.Selection().Len()))
	}
	handle := func(keys []string, fn func()) {
		for _, k := range keys {
			app.Handle(k, func() {
				fn()
				updateStatus()
			})
		}
	}

	handle([]string{"j", "<Down>"}, func() { list.MoveCursor(1) })
	handle([]string{"k", "<Up>"}, func() { list.MoveCursor(-1) })
	handle([]string{"<PgDn>", "<C-f>"}, func() { list.PageDown() })
	handle([]string{"<PgUp>", "<C-b>"}, func() { list.PageUp() })
	handle([]string{"g", "<Home>"}, func() { list.First() })
	handle([]string{"G", "<End>"}, func() { list.Last() })
	handle([]string{"<Space>"}, func() { list.ToggleSelected() })
	handle([]string{"a"}, func() {
		items.Add(generate(next, 10)...)
		next += 10
	})
	handle([]string{"i"}, func() {
		items.InsertRange(max(list.Cursor(), 0), generate(next, 3)...)
		next += 3
	})
	handle([]string{"d"}, func() {
		if c := list.Cursor(); c >= 0 {
			items.RemoveAt(c)
		}
	})
	handle([]string{"r"}, func() {
		items.Set(generate(next, *count))
		next += *count
	})
	handle([]string{"q", "<C-c>"}, app.Stop)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	updateStatus()
	if err := app.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

func generate(start, n int) []entry {
	out := make([]entry, n)
	for i := range out {
		id := start + i
		out[i] = entry{
			ID:   id,
			Name: fmt.Sprintf("item-%06d.dat", id),
			Size: (id * 7919) % 1000003,
		}
	}
	return out
}
