package widget

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func checker(n int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
			} else {
				img.Set(x, y, color.RGBA{B: 0xff, A: 0xff})
			}
		}
	}
	return img
}

func TestNewCanvasMinimumSize(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 1, 1), NewCanvas(0, -3).Image().Bounds())
}

func TestCanvasPaintScales(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Clear(color.RGBA{G: 0xff, A: 0xff})
	c.Paint(checker(2))

	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	img := c.Image()
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(1, 1))
	assert.Equal(t, blue, img.RGBAAt(2, 0))
	assert.Equal(t, blue, img.RGBAAt(0, 3))
	assert.Equal(t, red, img.RGBAAt(3, 3))
}

func TestCanvasPaintKeepsBackgroundUnderTransparency(t *testing.T) {
	c := NewCanvas(2, 2)
	green := color.RGBA{G: 0xff, A: 0xff}
	c.Clear(green)
	c.Paint(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	assert.Equal(t, green, c.Image().RGBAAt(1, 1))
	c.Paint(nil)
	assert.Equal(t, green, c.Image().RGBAAt(0, 0))
}

func TestCanvasStretch(t *testing.T) {
	col := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	src := NewCanvas(3, 2)
	src.Clear(col)
	c := NewCanvas(16, 9)
	c.Stretch(src.Image())
	assert.Equal(t, col, c.Image().RGBAAt(0, 0))
	assert.Equal(t, col, c.Image().RGBAAt(15, 8))
}
