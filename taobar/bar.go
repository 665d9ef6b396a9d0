package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/taobar/taobar/hook"
	"github.com/taobar/taobar/widget"
)

// stretchWidget is the widget that takes up the bar space the others leave.
const stretchWidget = "windowname"

var (
	barFont      xp.Font
	barAscent    int16
	barCharWidth int
	rootDepth    byte
)

// bar is the status bar along the top of a screen. It hosts the widgets and
// repaints them after any event that asked for a redraw.
type bar struct {
	screen  *screen
	xWin    xp.Window
	gc      xp.Gcontext
	height  int
	fg, bg  color.RGBA
	widgets []widget.Widget
	mounted bool
	dirty   bool
}

func (b *bar) Screen() (hook.Screen, bool) { return b.screen, true }
func (b *bar) Groups() []hook.Group        { return hookGroups() }
func (b *bar) Height() int                 { return b.height }
func (b *bar) Draw()                       { b.dirty = true }

func (b *bar) Post(ctx context.Context, f func()) bool {
	select {
	case proactiveChan <- f:
		return true
	case <-ctx.Done():
		return false
	}
}

// xlfd builds a core font pattern for a font family and pixel size.
func xlfd(family string, size int) string {
	family = strings.ToLower(family)
	px := "*"
	if size > 0 {
		px = fmt.Sprint(size)
	}
	return fmt.Sprintf("-*-%s-*-r-*-*-%s-*-*-*-*-*-iso10646-1", family, px)
}

// openFont opens the configured font, falling back to X11's default font.
// Only core fonts are supported, so most Xft font names end in the fallback.
func openFont(opts widget.Options) {
	var err error
	barFont, err = xp.NewFontId(xConn)
	if err != nil {
		logger.Fatal("allocating font id", zap.Error(err))
	}
	names := []string{"fixed"}
	if opts.Font != "" {
		names = append([]string{xlfd(opts.Font, opts.FontSize)}, names...)
	}
	opened := false
	for _, name := range names {
		if err := xp.OpenFontChecked(xConn, barFont, uint16(len(name)), name).Check(); err != nil {
			logger.Debug("could not open font", zap.String("font", name), zap.Error(err))
			continue
		}
		logger.Debug("opened font", zap.String("font", name))
		opened = true
		break
	}
	if !opened {
		logger.Fatal("could not open any font", zap.Strings("fonts", names))
	}
	fi, err := xp.QueryFont(xConn, xp.Fontable(barFont)).Reply()
	if err != nil {
		logger.Fatal("querying font", zap.Error(err))
	}
	barAscent = fi.FontAscent
	barCharWidth = int(fi.MaxBounds.CharacterWidth)
}

func initBars(xScreen *xp.ScreenInfo) {
	rootDepth = xScreen.RootDepth
	defaults, _, err := widget.DecodeOptions(cfg.WidgetDefaults, nil)
	if err != nil {
		logger.Fatal("decoding widget defaults", zap.Error(err))
	}
	openFont(defaults)
	fg, _ := widget.ParseColor(defaults.Foreground)
	bg, _ := widget.ParseColor(defaults.Background)

	for _, s := range screens {
		b := &bar{screen: s, height: cfg.Bar.Height, fg: fg, bg: bg}
		b.create(xScreen)
		ws, err := cfg.Widgets(logger)
		if err != nil {
			logger.Fatal("building widgets", zap.Error(err))
		}
		b.widgets = ws
		s.bar = b
	}
	for _, s := range screens {
		for _, w := range s.bar.widgets {
			w.Mount(s.bar, bus)
		}
		s.bar.mounted = true
		s.bar.dirty = true
	}
}

func (b *bar) create(xScreen *xp.ScreenInfo) {
	var err error
	b.xWin, err = xp.NewWindowId(xConn)
	if err != nil {
		logger.Fatal("allocating bar window id", zap.Error(err))
	}
	b.gc, err = xp.NewGcontextId(xConn)
	if err != nil {
		logger.Fatal("allocating bar gc id", zap.Error(err))
	}
	r := b.screen.rect
	if err := xp.CreateWindowChecked(
		xConn, xScreen.RootDepth, b.xWin, xScreen.Root,
		r.X, r.Y, r.Width, uint16(b.height), 0,
		xp.WindowClassInputOutput,
		xScreen.RootVisual,
		xp.CwBackPixel|xp.CwOverrideRedirect|xp.CwEventMask,
		[]uint32{
			rgbPixel(b.bg),
			1,
			xp.EventMaskExposure,
		},
	).Check(); err != nil {
		logger.Fatal("creating bar window", zap.Error(err))
	}
	if err := xp.CreateGCChecked(
		xConn,
		b.gc,
		xp.Drawable(b.xWin),
		xp.GcFont,
		[]uint32{
			uint32(barFont),
		},
	).Check(); err != nil {
		logger.Fatal("creating bar gc", zap.Error(err))
	}
	if err := xp.MapWindowChecked(xConn, b.xWin).Check(); err != nil {
		logger.Fatal("mapping bar window", zap.Error(err))
	}
}

func isBar(xWin xp.Window) bool {
	for _, s := range screens {
		if s.bar != nil && s.bar.xWin == xWin {
			return true
		}
	}
	return false
}

func unmountBars() {
	for _, s := range screens {
		if s.bar == nil || !s.bar.mounted {
			continue
		}
		for _, w := range s.bar.widgets {
			w.Unmount()
		}
		s.bar.mounted = false
	}
}

func handleExpose(e xp.ExposeEvent) {
	for _, s := range screens {
		if s.bar != nil && s.bar.xWin == e.Window {
			s.bar.dirty = true
		}
	}
}

func paintBars() {
	for _, s := range screens {
		if s.bar != nil {
			s.bar.paint()
		}
	}
}

func rgbPixel(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// measure is the width in pixels of a rendering.
func measure(r widget.Rendering, charWidth int) int {
	w := 2 * r.Padding
	if r.Image != nil {
		return w + r.Image.Bounds().Dx()
	}
	for _, s := range r.Spans {
		w += len([]rune(s.Text)) * charWidth
	}
	return w
}

// slots lays widgets out left to right. The stretch widget, if any, gets
// whatever width the others leave.
func slots(widths []int, stretch, total int) (xs, ws []int) {
	ws = append([]int(nil), widths...)
	if stretch >= 0 {
		others := 0
		for i, w := range widths {
			if i != stretch {
				others += w
			}
		}
		ws[stretch] = max(total-others, 0)
	}
	xs = make([]int, len(ws))
	x := 0
	for i, w := range ws {
		xs[i] = x
		x += w
	}
	return xs, ws
}

// char2b encodes s for ImageText16. Characters outside the basic
// multilingual plane cannot be drawn with core fonts and become '?'.
func char2b(s string, limit int) []xp.Char2b {
	var cs []xp.Char2b
	for _, r := range s {
		if len(cs) == limit {
			break
		}
		if r > 0xffff {
			r = '?'
		}
		cs = append(cs, xp.Char2b{Byte1: byte(r >> 8), Byte2: byte(r)})
	}
	return cs
}

// bgrx converts an image to the ZPixmap layout of a 24-bit TrueColor
// visual with 32 bits per pixel.
func bgrx(img image.Image) []byte {
	r := img.Bounds()
	data := make([]byte, 0, 4*r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			data = append(data, c.B, c.G, c.R, 0)
		}
	}
	return data
}

func (b *bar) fill(c color.RGBA, x, width int) {
	if width <= 0 {
		return
	}
	check(xp.ChangeGCChecked(xConn, b.gc, xp.GcForeground, []uint32{rgbPixel(c)}))
	check(xp.PolyFillRectangleChecked(xConn, xp.Drawable(b.xWin), b.gc, []xp.Rectangle{{
		X: int16(x), Y: 0, Width: uint16(width), Height: uint16(b.height),
	}}))
}

func (b *bar) paint() {
	if !b.dirty || !b.mounted {
		return
	}
	b.dirty = false

	rs := make([]widget.Rendering, len(b.widgets))
	widths := make([]int, len(b.widgets))
	stretch := -1
	for i, w := range b.widgets {
		rs[i] = w.Render()
		widths[i] = measure(rs[i], barCharWidth)
		if stretch < 0 && w.Name() == stretchWidget {
			stretch = i
		}
	}
	xs, ws := slots(widths, stretch, int(b.screen.rect.Width))
	b.fill(b.bg, 0, int(b.screen.rect.Width))
	for i, r := range rs {
		b.paintRendering(r, xs[i], ws[i])
	}
}

func (b *bar) paintRendering(r widget.Rendering, x, width int) {
	if width <= 0 {
		return
	}
	if len(r.Spans) > 0 {
		b.fill(r.Spans[0].Background, x, width)
	}
	x0, end := x+r.Padding, x+width
	if img := r.Image; img != nil {
		ib := img.Bounds()
		rgba, ok := img.(*image.RGBA)
		if !ok {
			c := widget.NewCanvas(ib.Dx(), ib.Dy())
			c.Paint(img)
			rgba = c.Image()
		}
		putImage(xp.Drawable(b.xWin), b.gc, rootDepth, x0, (b.height-ib.Dy())/2, rgba)
		return
	}
	baseline := int16((b.height + int(barAscent)) / 2)
	for _, s := range r.Spans {
		if x0 >= end || barCharWidth <= 0 {
			return
		}
		cs := char2b(s.Text, min(255, (end-x0)/barCharWidth))
		if len(cs) == 0 {
			continue
		}
		check(xp.ChangeGCChecked(xConn, b.gc, xp.GcForeground|xp.GcBackground,
			[]uint32{rgbPixel(s.Foreground), rgbPixel(s.Background)}))
		check(xp.ImageText16Checked(xConn, byte(len(cs)), xp.Drawable(b.xWin), b.gc,
			int16(x0), baseline, cs))
		x0 += len(cs) * barCharWidth
	}
}
