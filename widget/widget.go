// Package widget implements the status bar widgets. A widget is built from an
// Options set, mounted on a Bar together with the hook.Bus it subscribes to,
// and rendered by the bar whenever the widget asks for a redraw.
//
// Widgets are driven from a single dispatch goroutine: hook handlers and
// closures passed to Bar.Post are the only code that touches widget state.
package widget

import (
	"context"
	"image"
	"image/color"
	"strings"

	"go.uber.org/zap"

	"github.com/taobar/taobar/hook"
)

// Bar is the host side of a widget: the bar slot it lives in.
type Bar interface {
	// Screen returns the bar's screen, or false during a screen transition.
	Screen() (hook.Screen, bool)
	// Groups returns every group, in configuration order.
	Groups() []hook.Group
	// Height is the bar height in pixels.
	Height() int
	// Draw requests a repaint of the bar. Calls before the next paint
	// collapse into one.
	Draw()
	// Post runs f on the dispatch goroutine. It returns false if ctx is done
	// before f could be queued.
	Post(ctx context.Context, f func()) bool
}

// Widget is a renderable unit in a bar.
type Widget interface {
	Name() string
	// Mount attaches the widget to its bar and registers its hooks.
	Mount(bar Bar, bus *hook.Bus)
	Render() Rendering
	// Unmount stops the widget. Hooks delivered afterwards are ignored.
	Unmount()
}

// Span is a run of text in one pair of colours.
type Span struct {
	Text       string
	Foreground color.RGBA
	Background color.RGBA
}

// Rendering is what a bar paints for a widget. When Image is non-nil the
// widget paints a surface and Spans is empty.
type Rendering struct {
	Spans   []Span
	Image   image.Image
	Padding int
}

// State is the widget lifecycle.
type State int

const (
	Uninitialized State = iota
	Subscribed
	Active
	Unmounted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Subscribed:
		return "subscribed"
	case Active:
		return "active"
	case Unmounted:
		return "unmounted"
	}
	return "unknown"
}

// Base carries what every widget has: options, colours, the bar, text or
// canvas, and the lifecycle state. Widgets embed it.
type Base struct {
	name   string
	opts   Options
	fg, bg color.RGBA
	log    *zap.Logger

	bar    Bar
	state  State
	text   string
	canvas *Canvas
	// painted is set while the canvas, not the text, is the output.
	painted bool
}

func newBase(name string, opts Options) Base {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fg, bg := opts.colors()
	return Base{
		name: name,
		opts: opts,
		fg:   fg,
		bg:   bg,
		log:  log.With(zap.String("widget", name)),
	}
}

func (b *Base) Name() string     { return b.name }
func (b *Base) State() State     { return b.state }
func (b *Base) Text() string     { return b.text }
func (b *Base) Options() Options { return b.opts }

func (b *Base) mount(bar Bar) {
	b.bar = bar
	b.state = Subscribed
}

// deliver records an event delivery and reports whether the widget should
// handle it.
func (b *Base) deliver() bool {
	switch b.state {
	case Subscribed:
		b.state = Active
	case Active:
	default:
		return false
	}
	return true
}

// SetText formats s with the fmt option and makes text the widget's output.
func (b *Base) SetText(s string) {
	b.text = Format(b.opts.Fmt, s)
	b.painted = false
}

// Surface returns the widget's canvas, sized to the bar height, and makes it
// the widget's output.
func (b *Base) Surface() *Canvas {
	if b.canvas == nil {
		h := 1
		if b.bar != nil {
			h = b.bar.Height() - 2*b.opts.Margin
		}
		b.canvas = NewCanvas(h, h)
	}
	b.painted = true
	return b.canvas
}

// Redraw asks the bar to repaint.
func (b *Base) Redraw() {
	if b.bar != nil {
		b.bar.Draw()
	}
}

func (b *Base) Render() Rendering {
	if b.painted && b.canvas != nil {
		return Rendering{Image: b.canvas.Image(), Padding: b.opts.Padding}
	}
	if b.text == "" {
		return Rendering{}
	}
	return Rendering{
		Spans:   []Span{{Text: b.text, Foreground: b.fg, Background: b.bg}},
		Padding: b.opts.Padding,
	}
}

func (b *Base) Unmount() {
	b.state = Unmounted
}

// Format substitutes text for the first "{}" in tmpl. An empty tmpl means
// "{}".
func Format(tmpl, text string) string {
	if tmpl == "" {
		return text
	}
	return strings.Replace(tmpl, "{}", text, 1)
}
