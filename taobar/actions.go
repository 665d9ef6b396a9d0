package main

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/taobar/taobar/config"
	"github.com/taobar/taobar/layout"
)

// doExec runs a command without waiting for it. Its exit status is ignored.
func doExec(_ *group, cmd1 interface{}) bool {
	cmd, ok := cmd1.([]string)
	if !ok {
		return false
	}
	if len(cmd) == 0 {
		return false
	}
	go func() {
		c := exec.Command(config.ExpandHome(cmd[0]), cmd[1:]...)
		if err := c.Start(); err != nil {
			logger.Warn("could not start command", zap.Strings("cmd", cmd), zap.Error(err))
			return
		}
		// Ignore any error from the program itself.
		c.Wait()
	}()
	return false
}

func doCommand(g *group, c1 interface{}) bool {
	c, ok := c1.(command)
	if !ok {
		return false
	}
	switch c {
	case cmdTerminal:
		return doExec(g, cfg.Terminal)
	case cmdLauncher:
		return doExec(g, cfg.Launcher)
	case cmdScreenshot:
		return doExec(g, cfg.Screenshot)
	case cmdPoweroff:
		return doExec(g, cfg.Poweroff)
	}
	return false
}

func doScript(g *group, s1 interface{}) bool {
	s, ok := s1.(scriptCall)
	if !ok {
		return false
	}
	script := cfg.VolumeScript
	if s.brightness {
		script = cfg.BrightnessScript
	}
	return doExec(g, []string{script, s.arg})
}

func doGrow(g *group, grow1 interface{}) bool {
	grow, ok := grow1.(bool)
	if !ok {
		return false
	}
	m, ok := g.layout().(*layout.MonadTall)
	if !ok {
		return false
	}
	if grow {
		m.Grow()
	} else {
		m.Shrink()
	}
	return true
}

func doFocus(g *group, t1 interface{}) bool {
	t, ok := t1.(traversal)
	if !ok {
		return false
	}
	if t == next {
		g.stack.FocusDown()
	} else {
		g.stack.FocusUp()
	}
	w, _ := g.stack.Focused()
	focus(w)
	return true
}

func doShuffle(g *group, d1 interface{}) bool {
	d, ok := d1.(rune)
	if !ok {
		return false
	}
	switch d {
	case 'h':
		g.stack.ShuffleLeft()
	case 'j':
		g.stack.ShuffleDown()
	case 'k':
		g.stack.ShuffleUp()
	case 'l':
		g.stack.ShuffleRight()
	}
	return true
}

func doSwapMain(g *group, _ interface{}) bool {
	g.stack.SwapMain()
	w, _ := g.stack.Focused()
	focus(w)
	return true
}

func doNextLayout(g *group, _ interface{}) bool {
	g.current = (g.current + 1) % len(g.layouts)
	g.arrange()
	bus.FireLayoutChange(g.layout(), g)
	return false
}

func doKill(g *group, _ interface{}) bool {
	w, ok := g.stack.Focused()
	if !ok {
		return false
	}
	if w.wmDeleteWindow {
		sendClientMessage(w.xWin, atomWMDeleteWindow)
	} else {
		check(xp.KillClientChecked(xConn, uint32(w.xWin)))
	}
	return false
}

func doToggleFloating(g *group, _ interface{}) bool {
	w, ok := g.stack.Focused()
	if !ok {
		return false
	}
	w.floating = !w.floating
	if w.floating {
		bw := 2 * uint16(cfg.BorderWidth)
		w.floatRect = w.rect
		w.floatRect.Width += bw
		w.floatRect.Height += bw
	}
	w.seen = false
	return true
}

// doToScreen shows the n'th group on the current screen. A group already
// shown on another screen swaps places with the current one.
func doToScreen(_ *group, n1 interface{}) bool {
	n, ok := n1.(int)
	if !ok || n < 0 || len(groups) <= n {
		return false
	}
	s0, g1 := currentScreen, groups[n]
	if s0.group == g1 {
		return false
	}
	g0 := show(s0, g1)
	if g0 != nil {
		g0.arrange()
	}
	g1.arrange()
	w, _ := g1.stack.Focused()
	focus(w)
	announceShown(g0, g1)
	return false
}

// show puts g1 on s. The group s showed before, if any, moves to g1's old
// screen, or off screen when g1 had none. It returns that group.
func show(s *screen, g1 *group) (g0 *group) {
	g0 = s.group
	s1 := g1.screen
	if s1 != nil {
		s1.group = g0
	}
	s.group, g1.screen = g1, s
	if g0 != nil {
		g0.screen = s1
	}
	return g0
}

// announceShown fires the hooks for show. CurrentLayout keeps the last layout
// reported from any screen, so g1, now on the current screen, goes last.
func announceShown(g0, g1 *group) {
	if g0 != nil && g0.screen != nil {
		bus.FireLayoutChange(g0.layout(), g0)
	}
	bus.FireSetGroup()
	bus.FireLayoutChange(g1.layout(), g1)
}

// doToGroup moves the focused window to the n'th group.
func doToGroup(g *group, n1 interface{}) bool {
	n, ok := n1.(int)
	if !ok || n < 0 || len(groups) <= n {
		return false
	}
	w, ok := g.stack.Focused()
	g1 := groups[n]
	if !ok || g1 == g {
		return false
	}
	g.stack.Remove(w)
	w.group = g1
	g1.stack.Add(w)
	g.arrange()
	g1.arrange()
	f, _ := g.stack.Focused()
	focus(f)
	bus.FireSetGroup()
	return false
}

func doRestart(_ *group, _ interface{}) bool {
	exe, err := os.Executable()
	if err != nil {
		logger.Error("could not restart", zap.Error(err))
		return false
	}
	logger.Info("restarting", zap.String("exe", exe))
	unmountBars()
	env := append(os.Environ(), restartEnv+"=1")
	err = syscall.Exec(exe, os.Args, env)
	logger.Error("could not restart", zap.Error(err))
	return false
}

var quitting bool

// doQuit asks every window to close and stops once they have, or after
// quitDuration.
func doQuit(_ *group, _ interface{}) bool {
	if quitting {
		return false
	}
	quitting = true
	logger.Info("quitting")

	waiting := false
	for _, g := range groups {
		for _, w := range g.stack.Items() {
			if w.wmDeleteWindow {
				waiting = true
				sendClientMessage(w.xWin, atomWMDeleteWindow)
			}
		}
	}
	if waiting {
		time.AfterFunc(quitDuration, stop)
	} else {
		stop()
	}
	return false
}

func focus(w *window) {
	if focusedWindow != w {
		if focusedWindow != nil {
			focusedWindow.setBorder(borderNormal)
		}
		if w != nil {
			w.setBorder(borderFocus)
		}
		focusedWindow = w
		defer bus.FireFocusChange()
	}
	xWin := desktopXWin
	if w != nil {
		xWin = w.xWin
		if w.wmTakeFocus {
			sendClientMessage(xWin, atomWMTakeFocus)
			return
		}
	}
	check(xp.SetInputFocusChecked(xConn, xp.InputFocusParent, xWin, eventTime))
}
