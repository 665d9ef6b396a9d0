package main

import (
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/taobar/taobar/hook"
	"github.com/taobar/taobar/layout"
)

type traversal int

const (
	next traversal = iota
	prev
)

// offscreenXY is the most negative X/Y co-ordinate.
const offscreenXY = -1 << 15

func contains(r xp.Rectangle, x, y int16) bool {
	return r.X <= x && x <= r.X+int16(r.Width) &&
		r.Y <= y && y <= r.Y+int16(r.Height)
}

var (
	screens []*screen
	groups  []*group

	// currentScreen is the screen holding the pointer, and so the one that
	// key bindings act on.
	currentScreen *screen
	focusedWindow *window
)

func screenContaining(x, y int16) *screen {
	for _, s := range screens {
		if contains(s.rect, x, y) {
			return s
		}
	}
	return screens[0]
}

func findWindow(predicate func(*window) bool) *window {
	for _, g := range groups {
		for _, w := range g.stack.Items() {
			if predicate(w) {
				return w
			}
		}
	}
	return nil
}

func hookGroups() []hook.Group {
	hs := make([]hook.Group, len(groups))
	for i, g := range groups {
		hs[i] = g
	}
	return hs
}

type screen struct {
	index int
	rect  xp.Rectangle
	group *group
	bar   *bar
}

func (s *screen) Index() int { return s.index }

func (s *screen) Group() (hook.Group, bool) {
	if s.group == nil {
		return nil, false
	}
	return s.group, true
}

// area is the part of the screen that tiled windows may use.
func (s *screen) area() xp.Rectangle {
	r := s.rect
	if s.bar != nil {
		h := uint16(s.bar.height)
		r.Y += int16(h)
		r.Height -= min(h, r.Height)
	}
	return r
}

type group struct {
	name    string
	layouts []layout.Layout
	current int
	stack   layout.Stack[*window]
	screen  *screen
}

func newGroup(name string, layouts []layout.Layout) *group {
	g := &group{name: name}
	for _, l := range layouts {
		g.layouts = append(g.layouts, l.Clone())
	}
	return g
}

func (g *group) Name() string          { return g.name }
func (g *group) Layout() hook.Layout   { return g.layout() }
func (g *group) layout() layout.Layout { return g.layouts[g.current] }

func (g *group) Windows() []hook.Window {
	ws := make([]hook.Window, 0, g.stack.Len())
	for _, w := range g.stack.Items() {
		ws = append(ws, w)
	}
	return ws
}

func (g *group) Focused() (hook.Window, bool) {
	w, ok := g.stack.Focused()
	if !ok {
		return nil, false
	}
	return w, true
}

func (g *group) Screen() (hook.Screen, bool) {
	if g.screen == nil {
		return nil, false
	}
	return g.screen, true
}

// tiled returns the windows the layout arranges and the index among them of
// the focused window, or -1.
func (g *group) tiled() (ws []*window, focus int) {
	focus = -1
	f, _ := g.stack.Focused()
	for _, w := range g.stack.Items() {
		if w.floating {
			continue
		}
		if w == f {
			focus = len(ws)
		}
		ws = append(ws, w)
	}
	return ws, focus
}

// arrange moves the group's windows to where the current layout wants them,
// or offscreen when the group is not shown.
func (g *group) arrange() {
	if g.screen == nil {
		for _, w := range g.stack.Items() {
			w.place(layout.Placement{})
		}
		return
	}
	ws, focus := g.tiled()
	ps := g.layout().Arrange(g.screen.area(), len(ws), focus)
	for i, w := range ws {
		w.place(ps[i])
	}
	for _, w := range g.stack.Items() {
		if w.floating {
			w.place(layout.Placement{Rect: w.floatRect, Visible: true})
		}
	}
}

type window struct {
	group     *group
	xWin      xp.Window
	rect      xp.Rectangle
	floatRect xp.Rectangle
	name      string
	classes   []string

	transientFor   *window
	floating       bool
	seen           bool
	wmDeleteWindow bool
	wmTakeFocus    bool
}

func (w *window) Name() string { return w.name }

func (w *window) property(a xp.Atom) string {
	p, err := xp.GetProperty(xConn, false, w.xWin, a, xp.GetPropertyTypeAny, 0, 1<<32-1).Reply()
	if err != nil {
		logger.Debug("reading window property", zap.Uint32("window", uint32(w.xWin)), zap.Error(err))
		return ""
	}
	return string(p.Value)
}

// splitClass splits a WM_CLASS value into its instance and class names.
func splitClass(v string) []string {
	var cs []string
	for _, c := range strings.Split(v, "\x00") {
		if c != "" {
			cs = append(cs, c)
		}
	}
	return cs
}

func (w *window) readName() {
	w.name = preferredName(w.property(atomNetWMName), w.property(atomWMName))
}

// preferredName picks the UTF-8 _NET_WM_NAME over the legacy WM_NAME.
func preferredName(netName, name string) string {
	if netName != "" {
		return netName
	}
	return name
}

// place configures the window to the placement's rectangle, less its border,
// or moves it offscreen. Unchanged placements send no request.
func (w *window) place(p layout.Placement) {
	bw := uint16(cfg.BorderWidth)
	r := xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: w.rect.Width, Height: w.rect.Height}
	if p.Visible {
		r = p.Rect
		r.Width -= min(2*bw, r.Width-1)
		r.Height -= min(2*bw, r.Height-1)
	}
	if w.seen && w.rect == r {
		return
	}
	w.rect = r
	var (
		mask   uint16
		values []uint32
	)
	if r.X != offscreenXY {
		w.seen = true
		mask = xp.ConfigWindowX |
			xp.ConfigWindowY |
			xp.ConfigWindowWidth |
			xp.ConfigWindowHeight |
			xp.ConfigWindowBorderWidth
		values = []uint32{
			uint32(uint16(r.X)),
			uint32(uint16(r.Y)),
			uint32(r.Width),
			uint32(r.Height),
			uint32(bw),
		}
		if w.floating {
			mask |= xp.ConfigWindowStackMode
			values = append(values, xp.StackModeAbove)
		}
	} else {
		mask = xp.ConfigWindowX | xp.ConfigWindowY
		values = []uint32{
			uint32(uint16(r.X)),
			uint32(uint16(r.Y)),
		}
	}
	check(xp.ConfigureWindowChecked(xConn, w.xWin, mask, values))
}

func (w *window) setBorder(pixel uint32) {
	check(xp.ChangeWindowAttributesChecked(xConn, w.xWin, xp.CwBorderPixel, []uint32{pixel}))
}
