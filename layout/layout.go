// Package layout holds the tiling arrangements and the ordered window stack
// they arrange. Nothing here talks to the X server; the window manager turns
// Placements into ConfigureWindow requests.
package layout

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Placement is where a window goes. Hidden windows are moved offscreen.
type Placement struct {
	Rect    xp.Rectangle
	Visible bool
}

// Layout arranges n windows in area. focus is the index of the focused
// window, or -1.
type Layout interface {
	Name() string
	Arrange(area xp.Rectangle, n, focus int) []Placement
	// Clone returns an independent copy, so that each group keeps its own
	// layout state.
	Clone() Layout
}

// MonadTall puts the first window in a main pane on the left and stacks the
// rest in equal rows on the right.
type MonadTall struct {
	Ratio       float64
	MinRatio    float64
	MaxRatio    float64
	ChangeRatio float64
}

func NewMonadTall(ratio float64) *MonadTall {
	return &MonadTall{
		Ratio:       ratio,
		MinRatio:    0.25,
		MaxRatio:    0.75,
		ChangeRatio: 0.05,
	}
}

func (m *MonadTall) Name() string { return "monadtall" }

func (m *MonadTall) Clone() Layout {
	c := *m
	return &c
}

// Grow widens the main pane.
func (m *MonadTall) Grow() {
	m.Ratio = min(m.Ratio+m.ChangeRatio, m.MaxRatio)
}

// Shrink narrows the main pane.
func (m *MonadTall) Shrink() {
	m.Ratio = max(m.Ratio-m.ChangeRatio, m.MinRatio)
}

func (m *MonadTall) Arrange(area xp.Rectangle, n, focus int) []Placement {
	if n == 0 {
		return nil
	}
	ps := make([]Placement, n)
	if n == 1 {
		ps[0] = Placement{Rect: area, Visible: true}
		return ps
	}
	mainWidth := uint16(float64(area.Width) * m.Ratio)
	ps[0] = Placement{
		Rect:    xp.Rectangle{X: area.X, Y: area.Y, Width: mainWidth, Height: area.Height},
		Visible: true,
	}
	rows := n - 1
	for i := 0; i < rows; i++ {
		y0 := (i + 0) * int(area.Height) / rows
		y1 := (i + 1) * int(area.Height) / rows
		ps[i+1] = Placement{
			Rect: xp.Rectangle{
				X:      area.X + int16(mainWidth),
				Y:      area.Y + int16(y0),
				Width:  area.Width - mainWidth,
				Height: uint16(y1 - y0),
			},
			Visible: true,
		}
	}
	return ps
}

// Max shows only the focused window, filling the area.
type Max struct{}

func (Max) Name() string    { return "max" }
func (m Max) Clone() Layout { return m }

func (Max) Arrange(area xp.Rectangle, n, focus int) []Placement {
	if n == 0 {
		return nil
	}
	if focus < 0 || focus >= n {
		focus = 0
	}
	ps := make([]Placement, n)
	ps[focus] = Placement{Rect: area, Visible: true}
	return ps
}
