package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/taobar/taobar/config"
	"github.com/taobar/taobar/hook"
	"github.com/taobar/taobar/layout"
)

var (
	xConn    *xgb.Conn
	rootXWin xp.Window

	eventTime xp.Timestamp

	logger = zap.NewNop()
	cfg    = config.Default()
	bus    = hook.NewBus()

	// proactiveChan carries operations that happen of the program's own
	// accord, such as widget polls and icon theme reloads. These are sent to
	// the main goroutine from other goroutines. In comparison, examples of
	// reactive operations are responding to window creation and key presses.
	proactiveChan = make(chan func())

	// stop ends the main loop.
	stop context.CancelFunc = func() {}
)

type checker interface {
	Check() error
}

var checkers []checker

func check(c checker) {
	checkers = append(checkers, c)
}

func sendClientMessage(xWin xp.Window, atom xp.Atom) {
	check(xp.SendEventChecked(xConn, false, xWin, xp.EventMaskNoEvent,
		string(xp.ClientMessageEvent{
			Format: 32,
			Window: xWin,
			Type:   atomWMProtocols,
			Data: xp.ClientMessageDataUnionData32New([]uint32{
				uint32(atom),
				uint32(eventTime),
				0,
				0,
				0,
			}),
		}.Bytes()),
	))
}

func handleConfigureRequest(e xp.ConfigureRequestEvent) {
	w := findWindow(func(w *window) bool { return w.xWin == e.Window })
	if w != nil && !w.floating {
		// Tiled windows get the geometry the layout gave them.
		cne := xp.ConfigureNotifyEvent{
			Event:       w.xWin,
			Window:      w.xWin,
			X:           w.rect.X,
			Y:           w.rect.Y,
			Width:       w.rect.Width,
			Height:      w.rect.Height,
			BorderWidth: uint16(cfg.BorderWidth),
		}
		check(xp.SendEventChecked(xConn, false, w.xWin,
			xp.EventMaskStructureNotify, string(cne.Bytes())))
		return
	}
	mask, values := uint16(0), []uint32(nil)
	if e.ValueMask&xp.ConfigWindowX != 0 {
		mask |= xp.ConfigWindowX
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xp.ConfigWindowY != 0 {
		mask |= xp.ConfigWindowY
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xp.ConfigWindowWidth != 0 {
		mask |= xp.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xp.ConfigWindowHeight != 0 {
		mask |= xp.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xp.ConfigWindowBorderWidth != 0 {
		mask |= xp.ConfigWindowBorderWidth
		values = append(values, uint32(e.BorderWidth))
	}
	if e.ValueMask&xp.ConfigWindowSibling != 0 {
		mask |= xp.ConfigWindowSibling
		values = append(values, uint32(e.Sibling))
	}
	if e.ValueMask&xp.ConfigWindowStackMode != 0 {
		mask |= xp.ConfigWindowStackMode
		values = append(values, uint32(e.StackMode))
	}
	if w != nil {
		bw := 2 * uint16(cfg.BorderWidth)
		w.floatRect = xp.Rectangle{X: e.X, Y: e.Y, Width: e.Width + bw, Height: e.Height + bw}
		w.seen = false
	}
	check(xp.ConfigureWindowChecked(xConn, e.Window, mask, values))
}

// shouldFloat reports whether a new window floats: transients, and windows
// matching a float rule.
func shouldFloat(w *window) bool {
	if w.transientFor != nil {
		return true
	}
	for _, m := range cfg.FloatRules {
		if m.Matches(w.classes, w.name) {
			return true
		}
	}
	return false
}

func manage(xWin xp.Window, mapRequest bool) {
	if w := findWindow(func(w *window) bool { return w.xWin == xWin }); w != nil {
		if mapRequest {
			check(xp.MapWindowChecked(xConn, xWin))
		}
		return
	}

	wmDeleteWindow, wmTakeFocus := false, false
	if prop, err := xp.GetProperty(xConn, false, xWin, atomWMProtocols,
		xp.GetPropertyTypeAny, 0, 64).Reply(); err != nil {
		logger.Warn("reading WM_PROTOCOLS", zap.Error(err))
	} else {
		for v := prop.Value; len(v) >= 4; v = v[4:] {
			switch xp.Atom(u32(v)) {
			case atomWMDeleteWindow:
				wmDeleteWindow = true
			case atomWMTakeFocus:
				wmTakeFocus = true
			}
		}
	}

	transientFor := (*window)(nil)
	if prop, err := xp.GetProperty(xConn, false, xWin, atomWMTransientFor,
		xp.GetPropertyTypeAny, 0, 64).Reply(); err != nil {
		logger.Warn("reading WM_TRANSIENT_FOR", zap.Error(err))
	} else if v := prop.Value; len(v) == 4 {
		transientForXWin := xp.Window(u32(v))
		transientFor = findWindow(func(w *window) bool {
			return w.xWin == transientForXWin
		})
	}

	g := currentScreen.group
	if transientFor != nil {
		g = transientFor.group
	}
	w := &window{
		group:          g,
		xWin:           xWin,
		transientFor:   transientFor,
		rect:           xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: 1, Height: 1},
		wmDeleteWindow: wmDeleteWindow,
		wmTakeFocus:    wmTakeFocus,
	}
	w.readName()
	w.classes = splitClass(w.property(atomWMClass))
	if w.floating = shouldFloat(w); w.floating {
		if geom, err := xp.GetGeometry(xConn, xp.Drawable(xWin)).Reply(); err != nil {
			logger.Warn("reading geometry", zap.Error(err))
			w.floatRect = g.screenOrFirst().area()
		} else {
			bw := 2 * uint16(cfg.BorderWidth)
			w.floatRect = xp.Rectangle{X: geom.X, Y: geom.Y, Width: geom.Width + bw, Height: geom.Height + bw}
		}
	}

	check(xp.ChangeWindowAttributesChecked(xConn, xWin, xp.CwEventMask,
		[]uint32{xp.EventMaskEnterWindow | xp.EventMaskStructureNotify | xp.EventMaskPropertyChange},
	))
	w.setBorder(borderNormal)
	g.stack.Add(w)
	g.arrange()
	if mapRequest {
		check(xp.MapWindowChecked(xConn, xWin))
	}
	if g.screen == currentScreen {
		focus(w)
	}
	logger.Debug("managed window", zap.Uint32("window", uint32(xWin)),
		zap.String("name", w.name), zap.String("group", g.name), zap.Bool("floating", w.floating))
	bus.FireClientManaged(w)
}

func (g *group) screenOrFirst() *screen {
	if g.screen != nil {
		return g.screen
	}
	return screens[0]
}

func unmanage(xWin xp.Window) {
	w := findWindow(func(w *window) bool { return w.xWin == xWin })
	if w == nil {
		return
	}
	for _, g := range groups {
		for _, w1 := range g.stack.Items() {
			if w1.transientFor == w {
				w1.transientFor = nil
			}
		}
	}
	g := w.group
	g.stack.Remove(w)
	g.arrange()
	if focusedWindow == w {
		focusedWindow = nil
		if g.screen == currentScreen {
			f, _ := g.stack.Focused()
			focus(f)
		}
	}
	logger.Debug("unmanaged window", zap.Uint32("window", uint32(xWin)), zap.String("group", g.name))
	bus.FireClientKilled(w)
	if quitting && findWindow(func(w *window) bool { return true }) == nil {
		stop()
	}
}

// initGroups builds the configured groups and shows the first ones on the
// screens, in order.
func initGroups() {
	layouts := []layout.Layout{layout.NewMonadTall(cfg.Ratio), layout.Max{}}
	groups = make([]*group, len(cfg.Groups))
	for i, name := range cfg.Groups {
		groups[i] = newGroup(name, layouts)
	}
	for i, s := range screens {
		if i < len(groups) {
			s.group, groups[i].screen = groups[i], s
		}
	}
	currentScreen = screens[0]
}

func autostart() {
	path := config.ExpandHome(cfg.Autostart)
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		logger.Debug("no autostart script", zap.String("path", path))
		return
	}
	doExec(nil, []string{path})
}

type xEventOrError struct {
	event xgb.Event
	error xgb.Error
}

// run is the window manager: it connects to the X server, takes over the
// root window and dispatches events until ctx is done or the user quits.
func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop = cancel

	var err error
	xConn, err = xgb.NewConn()
	if err != nil {
		return err
	}
	defer xConn.Close()
	if err = xinerama.Init(xConn); err != nil {
		return err
	}
	xSetup := xp.Setup(xConn)
	if len(xSetup.Roots) != 1 {
		return fmt.Errorf("X setup has unsupported number of roots: %d", len(xSetup.Roots))
	}
	rootXWin = xSetup.Roots[0].Root

	becomeTheWM()
	initAtoms()
	initDesktop(&xSetup.Roots[0])
	initKeyboardMapping()
	initScreens()
	initWallpaper(&xSetup.Roots[0])
	initWMName(&xSetup.Roots[0])
	initGroups()
	initBars(&xSetup.Roots[0])
	defer unmountBars()

	bus.OnStartupOnce(autostart)

	// Manage any existing windows.
	tree, err := xp.QueryTree(xConn, rootXWin).Reply()
	if err != nil {
		return err
	}
	for _, c := range tree.Children {
		if c == desktopXWin || isBar(c) {
			continue
		}
		attrs, err := xp.GetWindowAttributes(xConn, c).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState == xp.MapStateUnmapped {
			continue
		}
		manage(c, false)
	}

	if os.Getenv(restartEnv) == "" {
		bus.FireStartupOnce()
	}
	paintBars()

	// Process X events.
	eeChan := make(chan xEventOrError)
	go func() {
		for {
			e, err := xConn.WaitForEvent()
			if e == nil && err == nil {
				// The connection is closed.
				return
			}
			select {
			case eeChan <- xEventOrError{e, err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	for {
		for i, c := range checkers {
			if err := c.Check(); err != nil {
				logger.Warn("X request failed", zap.Error(err))
			}
			checkers[i] = nil
		}
		checkers = checkers[:0]

		select {
		case <-ctx.Done():
			return nil
		case f := <-proactiveChan:
			f()
		case ee := <-eeChan:
			if ee.error != nil {
				logger.Warn("X error", zap.Error(ee.error))
				continue
			}
			switch e := ee.event.(type) {
			case xp.ButtonPressEvent:
				eventTime = e.Time
			case xp.ButtonReleaseEvent:
				eventTime = e.Time
			case xp.ClientMessageEvent:
				// No-op.
			case xp.ConfigureNotifyEvent:
				// No-op.
			case xp.ConfigureRequestEvent:
				handleConfigureRequest(e)
			case xp.DestroyNotifyEvent:
				unmanage(e.Window)
			case xp.EnterNotifyEvent:
				eventTime = e.Time
				handleEnterNotify(e)
			case xp.ExposeEvent:
				handleExpose(e)
			case xp.KeyPressEvent:
				eventTime = e.Time
				handleKeyPress(e)
			case xp.KeyReleaseEvent:
				eventTime = e.Time
			case xp.MapNotifyEvent:
				// No-op.
			case xp.MappingNotifyEvent:
				// No-op.
			case xp.MapRequestEvent:
				manage(e.Window, true)
			case xp.MotionNotifyEvent:
				eventTime = e.Time
				handleMotionNotify(e)
			case xp.PropertyNotifyEvent:
				handlePropertyNotify(e)
			case xp.UnmapNotifyEvent:
				unmanage(e.Window)
			default:
				logger.Debug("unhandled event", zap.String("event", ee.event.String()))
			}
		}
		paintBars()
	}
}
