package widget

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Canvas is an in-memory drawing surface that the bar copies to screen.
type Canvas struct {
	img *image.RGBA
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear fills the canvas with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Paint composites src over the canvas, scaled to the canvas size. Icons are
// small, so nearest-neighbour keeps their edges sharp.
func (c *Canvas) Paint(src image.Image) {
	if src == nil {
		return
	}
	xdraw.NearestNeighbor.Scale(c.img, c.img.Bounds(), src, src.Bounds(), draw.Over, nil)
}

// Stretch replaces the canvas with src scaled to fit it exactly, ignoring
// the aspect ratio.
func (c *Canvas) Stretch(src image.Image) {
	if src == nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(c.img, c.img.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// LoadImage decodes a PNG file.
func LoadImage(path string) (image.Image, error) {
	return loadPNG(path)
}
