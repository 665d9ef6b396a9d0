package main

import (
	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"
)

// setCurrentScreen makes s the screen that key bindings act on.
func setCurrentScreen(s *screen) {
	if s == currentScreen {
		return
	}
	currentScreen = s
	bus.FireCurrentScreenChange()
}

func handleEnterNotify(e xp.EnterNotifyEvent) {
	if !cfg.FollowMouseFocus {
		return
	}
	w := findWindow(func(w *window) bool { return w.xWin == e.Event })
	if w == nil || w.group.screen == nil {
		return
	}
	setCurrentScreen(w.group.screen)
	w.group.stack.SetFocus(w)
	focus(w)
}

func handleMotionNotify(e xp.MotionNotifyEvent) {
	s := screenContaining(e.RootX, e.RootY)
	if s == currentScreen {
		return
	}
	setCurrentScreen(s)
	if g := s.group; g != nil {
		w, _ := g.stack.Focused()
		focus(w)
	}
}

func handlePropertyNotify(e xp.PropertyNotifyEvent) {
	if e.Atom != atomWMName && e.Atom != atomNetWMName {
		return
	}
	w := findWindow(func(w *window) bool { return w.xWin == e.Window })
	if w == nil {
		return
	}
	name := w.name
	w.readName()
	if w.name != name {
		bus.FireClientNameUpdated(w)
	}
}

func handleKeyPress(e xp.KeyPressEvent) {
	shift := 0
	if e.State&xp.ModMaskShift != 0 {
		shift = 1
	}
	keysym := int32(keysyms[e.Detail][shift])
	if shift != 0 {
		if keysym == 0 {
			keysym = int32(keysyms[e.Detail][0])
		}
		keysym = ^keysym
	}
	a := actions[keysym]
	if a.do == nil {
		return
	}
	setCurrentScreen(screenContaining(e.RootX, e.RootY))
	g := currentScreen.group
	if g == nil {
		return
	}
	logger.Debug("key action", zap.String("keysym", keysymName(keysym)), zap.String("group", g.name))
	if a.do(g, a.arg) {
		g.arrange()
	}
}

func keysymName(k int32) string {
	if k < 0 {
		return "shift+" + keysymString(xp.Keysym(^k))
	}
	return keysymString(xp.Keysym(k))
}
