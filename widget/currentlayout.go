package widget

import (
	"strconv"

	"github.com/taobar/taobar/hook"
)

const (
	// MaxLayout is the name of the layout that shows one window at a time.
	MaxLayout = "max"
	// TiledGlyph is shown for every layout other than MaxLayout.
	TiledGlyph = "[]="
)

// CurrentLayout shows the layout of the bar screen's group. In the max
// layout it shows the number of windows instead, since only one is visible.
type CurrentLayout struct {
	Base
	layout string
	count  int
}

func NewCurrentLayout(opts Options) *CurrentLayout {
	return &CurrentLayout{Base: newBase("currentlayout", opts)}
}

func (w *CurrentLayout) Mount(bar Bar, bus *hook.Bus) {
	w.mount(bar)
	if g, ok := screenGroup(bar); ok {
		w.layout = g.Layout().Name()
		w.count = len(g.Windows())
	}
	w.SetText(LayoutText(w.layout, w.count))

	bus.OnLayoutChange(w.layoutChanged)
	bus.OnClientKilled(func(hook.Window) { w.recount() })
	bus.OnClientManaged(func(hook.Window) { w.recount() })
	bus.OnCurrentScreenChange(w.recount)
	bus.OnSetGroup(w.recount)
}

func (w *CurrentLayout) Layout() string   { return w.layout }
func (w *CurrentLayout) WindowCount() int { return w.count }

func (w *CurrentLayout) layoutChanged(l hook.Layout, g hook.Group) {
	if !w.deliver() {
		return
	}
	w.layout = l.Name()
	gs, ok := g.Screen()
	if !ok {
		return
	}
	if bs, ok := w.bar.Screen(); ok && hook.SameScreen(gs, bs) {
		w.change()
	}
}

func (w *CurrentLayout) recount() {
	if !w.deliver() {
		return
	}
	w.count = 0
	if g, ok := screenGroup(w.bar); ok {
		w.count = len(g.Windows())
	}
	w.change()
}

func (w *CurrentLayout) change() {
	w.SetText(LayoutText(w.layout, w.count))
	w.Redraw()
}

// LayoutText is the CurrentLayout display for a layout and window count.
func LayoutText(layout string, count int) string {
	if layout != MaxLayout {
		return TiledGlyph
	}
	if count == 0 {
		return "[M]"
	}
	return "[" + strconv.Itoa(count) + "]"
}

// screenGroup returns the group shown on the bar's screen. It is false while
// either reference is unavailable.
func screenGroup(bar Bar) (hook.Group, bool) {
	s, ok := bar.Screen()
	if !ok {
		return nil, false
	}
	return s.Group()
}
