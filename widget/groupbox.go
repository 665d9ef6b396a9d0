package widget

import (
	"image/color"

	"github.com/taobar/taobar/hook"
)

// GroupBox shows every group's name. The group on the bar's screen is drawn
// as a highlighted block, groups holding windows in the active colour and
// empty groups in the inactive colour.
type GroupBox struct {
	Base
	active, inactive, highlight color.RGBA
}

func NewGroupBox(opts Options) *GroupBox {
	w := &GroupBox{Base: newBase("groupbox", opts)}
	w.active = mustColor(opts.Active, defaultForeground)
	w.inactive = mustColor(opts.Inactive, "#404040")
	w.highlight = mustColor(opts.Highlight, "#215578")
	return w
}

func (w *GroupBox) Mount(bar Bar, bus *hook.Bus) {
	w.mount(bar)
	redraw := func() {
		if w.deliver() {
			w.Redraw()
		}
	}
	bus.OnSetGroup(redraw)
	bus.OnCurrentScreenChange(redraw)
	bus.OnClientManaged(func(hook.Window) { redraw() })
	bus.OnClientKilled(func(hook.Window) { redraw() })
}

func (w *GroupBox) Render() Rendering {
	if w.bar == nil || w.state == Unmounted {
		return Rendering{}
	}
	current := ""
	if g, ok := screenGroup(w.bar); ok {
		current = g.Name()
	}
	var spans []Span
	for _, g := range w.bar.Groups() {
		s := Span{Text: g.Name(), Foreground: w.inactive, Background: w.bg}
		if len(g.Windows()) > 0 {
			s.Foreground = w.active
		}
		if g.Name() == current {
			s.Foreground, s.Background = w.fg, w.highlight
		}
		spans = append(spans, s)
	}
	return Rendering{Spans: spans, Padding: w.opts.Padding}
}
