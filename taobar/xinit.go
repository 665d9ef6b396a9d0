package main

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/taobar/taobar/widget"
)

var (
	atomWMClass        xp.Atom
	atomWMDeleteWindow xp.Atom
	atomWMName         xp.Atom
	atomNetWMName      xp.Atom
	atomWMProtocols    xp.Atom
	atomWMTakeFocus    xp.Atom
	atomWMTransientFor xp.Atom

	desktopXWin   xp.Window
	desktopWidth  uint16
	desktopHeight uint16

	borderFocus  uint32
	borderNormal uint32

	keysyms [256][2]xp.Keysym
)

func becomeTheWM() {
	if err := xp.ChangeWindowAttributesChecked(xConn, rootXWin, xp.CwEventMask, []uint32{
		xp.EventMaskButtonPress |
			xp.EventMaskButtonRelease |
			xp.EventMaskPointerMotion |
			xp.EventMaskSubstructureRedirect |
			xp.EventMaskSubstructureNotify,
	}).Check(); err != nil {
		if _, ok := err.(xp.AccessError); ok {
			logger.Fatal("could not become the window manager. Is another window manager running?")
		}
		logger.Fatal("selecting root window events", zap.Error(err))
	}
}

func initAtoms() {
	atomWMClass = internAtom("WM_CLASS")
	atomWMDeleteWindow = internAtom("WM_DELETE_WINDOW")
	atomWMName = internAtom("WM_NAME")
	atomNetWMName = internAtom("_NET_WM_NAME")
	atomWMProtocols = internAtom("WM_PROTOCOLS")
	atomWMTakeFocus = internAtom("WM_TAKE_FOCUS")
	atomWMTransientFor = internAtom("WM_TRANSIENT_FOR")
}

func internAtom(name string) xp.Atom {
	r, err := xp.InternAtom(xConn, false, uint16(len(name)), name).Reply()
	if err != nil {
		logger.Fatal("interning atom", zap.String("atom", name), zap.Error(err))
	}
	return r.Atom
}

// pixel converts a colour to a 24-bit TrueColor pixel value.
func pixel(s string) uint32 {
	c, err := widget.ParseColor(s)
	if err != nil {
		logger.Warn("bad colour", zap.Error(err))
	}
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// initDesktop creates the window behind every other window. It holds the
// keyboard focus when no client does, and owns the XSETTINGS selection.
func initDesktop(xScreen *xp.ScreenInfo) {
	borderFocus = pixel(cfg.BorderFocus)
	borderNormal = pixel(cfg.BorderNormal)

	xFont, err := xp.NewFontId(xConn)
	if err != nil {
		logger.Fatal("allocating font id", zap.Error(err))
	}
	xCursor, err := xp.NewCursorId(xConn)
	if err != nil {
		logger.Fatal("allocating cursor id", zap.Error(err))
	}
	err = xp.OpenFontChecked(xConn, xFont, uint16(len("cursor")), "cursor").Check()
	if err != nil {
		logger.Fatal("opening cursor font", zap.Error(err))
	}
	const xcLeftPtr = 68 // XC_left_ptr from cursorfont.h.
	err = xp.CreateGlyphCursorChecked(
		xConn, xCursor, xFont, xFont, xcLeftPtr, xcLeftPtr+1,
		0xffff, 0xffff, 0xffff, 0, 0, 0).Check()
	if err != nil {
		logger.Fatal("creating cursor", zap.Error(err))
	}
	err = xp.CloseFontChecked(xConn, xFont).Check()
	if err != nil {
		logger.Fatal("closing cursor font", zap.Error(err))
	}

	desktopXWin, err = xp.NewWindowId(xConn)
	if err != nil {
		logger.Fatal("allocating desktop window id", zap.Error(err))
	}
	desktopWidth = xScreen.WidthInPixels
	desktopHeight = xScreen.HeightInPixels

	if err := xp.CreateWindowChecked(
		xConn, xScreen.RootDepth, desktopXWin, xScreen.Root,
		0, 0, desktopWidth, desktopHeight, 0,
		xp.WindowClassInputOutput,
		xScreen.RootVisual,
		xp.CwBackPixel|xp.CwOverrideRedirect|xp.CwCursor,
		[]uint32{
			pixel(backgroundColour()),
			1,
			uint32(xCursor),
		},
	).Check(); err != nil {
		logger.Fatal("creating desktop window", zap.Error(err))
	}

	initXSettings()

	if err := xp.ConfigureWindowChecked(
		xConn,
		desktopXWin,
		xp.ConfigWindowStackMode,
		[]uint32{
			xp.StackModeBelow,
		},
	).Check(); err != nil {
		logger.Fatal("lowering desktop window", zap.Error(err))
	}

	if err := xp.ChangeWindowAttributesChecked(
		xConn,
		rootXWin,
		xp.CwCursor,
		[]uint32{
			uint32(xCursor),
		},
	).Check(); err != nil {
		logger.Fatal("setting root cursor", zap.Error(err))
	}

	if err := xp.MapWindowChecked(xConn, desktopXWin).Check(); err != nil {
		logger.Fatal("mapping desktop window", zap.Error(err))
	}
}

func backgroundColour() string {
	s, _ := cfg.WidgetDefaults["background"].(string)
	if s == "" {
		return "#000000"
	}
	return s
}

// grabKeysyms are grabbed in addition to the mod key, so that they work
// without it.
var grabKeysyms = []xp.Keysym{
	xkAudioLowerVolume,
	xkAudioMute,
	xkAudioRaiseVolume,
	xkMonBrightnessUp,
	xkMonBrightnessDown,
	xkPrint,
}

func initKeyboardMapping() {
	const (
		keyLo = 8
		keyHi = 255
	)
	km, err := xp.GetKeyboardMapping(xConn, keyLo, keyHi-keyLo+1).Reply()
	if err != nil {
		logger.Fatal("reading keyboard mapping", zap.Error(err))
	}
	n := int(km.KeysymsPerKeycode)
	if n < 2 {
		logger.Fatal("too few keysyms per keycode", zap.Int("n", n))
	}
	for i := keyLo; i <= keyHi; i++ {
		keysyms[i][0] = km.Keysyms[(i-keyLo)*n+0]
		keysyms[i][1] = km.Keysyms[(i-keyLo)*n+1]
	}

	toGrabs := append([]xp.Keysym{modKeysym}, grabKeysyms...)
	for _, toGrab := range toGrabs {
		keycode := xp.Keycode(0)
		for i := keyLo; i <= keyHi; i++ {
			if keysyms[i][0] == toGrab || keysyms[i][1] == toGrab {
				keycode = xp.Keycode(i)
			}
		}
		if keycode == 0 {
			if toGrab != modKeysym {
				logger.Debug("key not on this keyboard", zap.String("keysym", keysymString(toGrab)))
				continue
			}
			logger.Fatal("could not find the mod key", zap.String("keysym", keysymString(toGrab)))
		}
		if err := xp.GrabKeyChecked(xConn, false, rootXWin, xp.ModMaskAny, keycode,
			xp.GrabModeAsync, xp.GrabModeAsync).Check(); err != nil {
			logger.Fatal("grabbing key", zap.String("keysym", keysymString(toGrab)), zap.Error(err))
		}
	}
}

func initScreens() {
	xine, err := xinerama.QueryScreens(xConn).Reply()
	if err != nil {
		logger.Fatal("querying xinerama screens", zap.Error(err))
	}
	if len(xine.ScreenInfo) > 0 {
		screens = make([]*screen, len(xine.ScreenInfo))
		for i, si := range xine.ScreenInfo {
			screens[i] = &screen{
				index: i,
				rect: xp.Rectangle{
					X:      si.XOrg,
					Y:      si.YOrg,
					Width:  si.Width,
					Height: si.Height,
				},
			}
		}
	} else {
		screens = []*screen{{
			rect: xp.Rectangle{
				X:      0,
				Y:      0,
				Width:  desktopWidth,
				Height: desktopHeight,
			},
		}}
	}
}

// xSetting is a key/value pair announced via the XSETTINGS mechanism. These
// include font and theme parameters picked up by GTK+ programs.
type xSetting struct {
	name  string
	value interface{}
}

func xSettings() []xSetting {
	opts, _, err := widget.DecodeOptions(cfg.WidgetDefaults, nil)
	if err != nil {
		logger.Warn("decoding widget defaults", zap.Error(err))
	}
	ss := []xSetting{
		{"Net/IconThemeName", cfg.IconTheme},
		{"Xft/Antialias", 1},
		{"Xft/DPI", 96 * 1024}, // Hard-code 96 DPI, the same as what gnome-settings-daemon does.
		{"Xft/Hinting", 1},
		{"Xft/HintStyle", "hintslight"},
		{"Xft/RGBA", "none"},
	}
	if opts.Font != "" {
		name := opts.Font
		if opts.FontSize > 0 {
			name = fmt.Sprintf("%s %d", name, opts.FontSize)
		}
		ss = append(ss, xSetting{"Gtk/FontName", name})
	}
	return ss
}

func initXSettings() {
	a0 := internAtom("_XSETTINGS_S0")
	if err := xp.SetSelectionOwnerChecked(xConn, desktopXWin, a0,
		xp.TimeCurrentTime).Check(); err != nil {
		logger.Warn("could not set xsettings", zap.Error(err))
		return
	}
	a1 := internAtom("_XSETTINGS_SETTINGS")
	encoded, err := encodeXSettings(xSettings())
	if err != nil {
		logger.Warn("could not set xsettings", zap.Error(err))
		return
	}
	if err := xp.ChangePropertyChecked(xConn, xp.PropModeReplace, desktopXWin, a1, a1,
		8, uint32(len(encoded)), encoded).Check(); err != nil {
		logger.Warn("could not set xsettings", zap.Error(err))
		return
	}
}

func encodeXSettings(settings []xSetting) ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteString("\x00\x00\x00\x00") // Zero means little-endian.
	b.WriteString("\x00\x00\x00\x00") // Serial number.
	writeUint32(b, uint32(len(settings)))
	for _, s := range settings {
		switch s.value.(type) {
		case int:
			b.WriteString("\x00\x00")
		case string:
			b.WriteString("\x01\x00")
		default:
			return nil, fmt.Errorf("unsupported XSETTINGS type %T for %s", s.value, s.name)
		}
		writeUint16(b, uint16(len(s.name)))
		b.WriteString(s.name)
		pad(b, len(s.name))
		b.WriteString("\x00\x00\x00\x00") // Serial number.
		switch v := s.value.(type) {
		case int:
			writeUint32(b, uint32(v))
		case string:
			writeUint32(b, uint32(len(v)))
			b.WriteString(v)
			pad(b, len(v))
		}
	}
	return b.Bytes(), nil
}

func pad(b *bytes.Buffer, n int) {
	if x := n % 4; x != 0 {
		b.WriteString("\x00\x00\x00\x00"[:4-x])
	}
}

func writeUint16(b *bytes.Buffer, u uint16) {
	b.WriteByte(byte(u >> 0))
	b.WriteByte(byte(u >> 8))
}

func writeUint32(b *bytes.Buffer, u uint32) {
	b.WriteByte(byte(u >> 0))
	b.WriteByte(byte(u >> 8))
	b.WriteByte(byte(u >> 16))
	b.WriteByte(byte(u >> 24))
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<0 | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
