package main

import (
	"image"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/taobar/taobar/config"
	"github.com/taobar/taobar/widget"
)

// putImageHeader is the size in bytes of a PutImage request before its data.
const putImageHeader = 24

// imageRows is how many rows of a width pixel wide 32 bits per pixel image
// fit in one request, given the server's maximum request length in 4-byte
// units.
func imageRows(width int, maxRequest uint16) int {
	if width <= 0 {
		return 0
	}
	return max(1, (int(maxRequest)*4-putImageHeader)/(width*4))
}

// putImage draws img at (x, y), split into as many requests as the server's
// request length limit needs.
func putImage(d xp.Drawable, gc xp.Gcontext, depth byte, x, y int, img *image.RGBA) {
	b := img.Bounds()
	step := imageRows(b.Dx(), xp.Setup(xConn).MaximumRequestLength)
	if step == 0 {
		return
	}
	for y0 := b.Min.Y; y0 < b.Max.Y; y0 += step {
		part := image.Rect(b.Min.X, y0, b.Max.X, min(y0+step, b.Max.Y))
		check(xp.PutImageChecked(xConn, xp.ImageFormatZPixmap, d, gc,
			uint16(part.Dx()), uint16(part.Dy()), int16(x), int16(y+y0-b.Min.Y), 0, depth,
			bgrx(img.SubImage(part))))
	}
}

// initWallpaper stretches the configured wallpaper over each screen and
// makes it the desktop window's background.
func initWallpaper(xScreen *xp.ScreenInfo) {
	if cfg.Wallpaper == "" {
		return
	}
	path := config.ExpandHome(cfg.Wallpaper)
	img, err := widget.LoadImage(path)
	if err != nil {
		logger.Warn("could not load wallpaper", zap.String("path", path), zap.Error(err))
		return
	}

	pix, err := xp.NewPixmapId(xConn)
	if err != nil {
		logger.Fatal("allocating wallpaper pixmap id", zap.Error(err))
	}
	if err := xp.CreatePixmapChecked(xConn, xScreen.RootDepth, pix, xp.Drawable(desktopXWin),
		desktopWidth, desktopHeight).Check(); err != nil {
		logger.Warn("creating wallpaper pixmap", zap.Error(err))
		return
	}
	defer xp.FreePixmap(xConn, pix)
	gc, err := xp.NewGcontextId(xConn)
	if err != nil {
		logger.Fatal("allocating wallpaper gc id", zap.Error(err))
	}
	if err := xp.CreateGCChecked(xConn, gc, xp.Drawable(pix), xp.GcForeground,
		[]uint32{pixel(backgroundColour())}).Check(); err != nil {
		logger.Warn("creating wallpaper gc", zap.Error(err))
		return
	}
	defer xp.FreeGC(xConn, gc)

	check(xp.PolyFillRectangleChecked(xConn, xp.Drawable(pix), gc, []xp.Rectangle{{
		Width: desktopWidth, Height: desktopHeight,
	}}))
	for _, s := range screens {
		c := widget.NewCanvas(int(s.rect.Width), int(s.rect.Height))
		c.Stretch(img)
		putImage(xp.Drawable(pix), gc, xScreen.RootDepth, int(s.rect.X), int(s.rect.Y), c.Image())
	}
	check(xp.ChangeWindowAttributesChecked(xConn, desktopXWin, xp.CwBackPixmap, []uint32{uint32(pix)}))
	check(xp.ClearAreaChecked(xConn, false, desktopXWin, 0, 0, 0, 0))
	logger.Debug("wallpaper set", zap.String("path", path), zap.Int("screens", len(screens)))
}

// initWMName announces cfg.WMName through a _NET_SUPPORTING_WM_CHECK window,
// the way EWMH clients look up the window manager's name.
func initWMName(xScreen *xp.ScreenInfo) {
	if cfg.WMName == "" {
		return
	}
	checkXWin, err := xp.NewWindowId(xConn)
	if err != nil {
		logger.Fatal("allocating check window id", zap.Error(err))
	}
	if err := xp.CreateWindowChecked(
		xConn, 0, checkXWin, xScreen.Root,
		offscreenXY, offscreenXY, 1, 1, 0,
		xp.WindowClassInputOnly,
		0,
		xp.CwOverrideRedirect,
		[]uint32{1},
	).Check(); err != nil {
		logger.Warn("creating check window", zap.Error(err))
		return
	}
	atomCheck := internAtom("_NET_SUPPORTING_WM_CHECK")
	atomUTF8 := internAtom("UTF8_STRING")
	data := make([]byte, 4)
	xgb.Put32(data, uint32(checkXWin))
	for _, w := range []xp.Window{rootXWin, checkXWin} {
		check(xp.ChangePropertyChecked(xConn, xp.PropModeReplace, w, atomCheck, xp.AtomWindow,
			32, 1, data))
	}
	check(xp.ChangePropertyChecked(xConn, xp.PropModeReplace, checkXWin, atomNetWMName, atomUTF8,
		8, uint32(len(cfg.WMName)), []byte(cfg.WMName)))
}
