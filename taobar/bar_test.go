package main

import (
	"image"
	"image/color"
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"github.com/taobar/taobar/widget"
)

func TestSlots(t *testing.T) {
	xs, ws := slots([]int{10, 20, 30}, -1, 100)
	assert.Equal(t, []int{0, 10, 30}, xs)
	assert.Equal(t, []int{10, 20, 30}, ws)

	xs, ws = slots([]int{10, 20, 30}, 1, 100)
	assert.Equal(t, []int{0, 10, 70}, xs)
	assert.Equal(t, []int{10, 60, 30}, ws)

	_, ws = slots([]int{80, 5, 30}, 1, 100)
	assert.Equal(t, 0, ws[1], "an overfull bar leaves the stretch widget no room")
}

func TestMeasure(t *testing.T) {
	r := widget.Rendering{
		Spans:   []widget.Span{{Text: "VOL 50%"}, {Text: "é"}},
		Padding: 3,
	}
	assert.Equal(t, 6+8*7, measure(r, 7))

	r = widget.Rendering{Image: image.NewRGBA(image.Rect(0, 0, 24, 24)), Padding: 2}
	assert.Equal(t, 28, measure(r, 7))

	assert.Equal(t, 0, measure(widget.Rendering{}, 7))
}

func TestChar2b(t *testing.T) {
	assert.Equal(t, []xp.Char2b{{Byte1: 0, Byte2: 'a'}, {Byte1: 0x20, Byte2: 0x26}}, char2b("a…", 10))
	assert.Equal(t, []xp.Char2b{{Byte2: '?'}}, char2b("\U000f0581", 10))
	assert.Len(t, char2b("abcdef", 4), 4)
	assert.Empty(t, char2b("abc", 0))
}

func TestBGRX(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 0xff})
	img.Set(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 0xff})
	assert.Equal(t, []byte{3, 2, 1, 0, 6, 5, 4, 0}, bgrx(img))
}

func TestXLFD(t *testing.T) {
	assert.Equal(t, "-*-terminus-*-r-*-*-16-*-*-*-*-*-iso10646-1", xlfd("Terminus", 16))
	assert.Equal(t, "-*-fixed-*-r-*-*-*-*-*-*-*-*-iso10646-1", xlfd("fixed", 0))
}

func TestRGBPixel(t *testing.T) {
	assert.Equal(t, uint32(0x1a1b26), rgbPixel(color.RGBA{R: 0x1a, G: 0x1b, B: 0x26, A: 0xff}))
}
