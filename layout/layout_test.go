package layout

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var area = xp.Rectangle{X: 0, Y: 26, Width: 1000, Height: 600}

func TestMonadTallArrange(t *testing.T) {
	m := NewMonadTall(0.55)
	assert.Nil(t, m.Arrange(area, 0, -1))

	assert.Equal(t, []Placement{{Rect: area, Visible: true}}, m.Arrange(area, 1, 0))

	got := m.Arrange(area, 3, 1)
	want := []Placement{
		{Rect: xp.Rectangle{X: 0, Y: 26, Width: 550, Height: 600}, Visible: true},
		{Rect: xp.Rectangle{X: 550, Y: 26, Width: 450, Height: 300}, Visible: true},
		{Rect: xp.Rectangle{X: 550, Y: 326, Width: 450, Height: 300}, Visible: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Arrange mismatch (-want +got):\n%s", diff)
	}
}

func TestMonadTallRowsFillHeight(t *testing.T) {
	m := NewMonadTall(0.5)
	ps := m.Arrange(area, 4, 0)
	total := 0
	for _, p := range ps[1:] {
		total += int(p.Rect.Height)
	}
	assert.Equal(t, int(area.Height), total)
	last := ps[len(ps)-1].Rect
	assert.Equal(t, int(area.Y)+int(area.Height), int(last.Y)+int(last.Height))
}

func TestMonadTallRatio(t *testing.T) {
	m := NewMonadTall(0.55)
	for i := 0; i < 10; i++ {
		m.Grow()
	}
	assert.Equal(t, 0.75, m.Ratio)
	for i := 0; i < 20; i++ {
		m.Shrink()
	}
	assert.Equal(t, 0.25, m.Ratio)

	c := m.Clone().(*MonadTall)
	c.Grow()
	assert.Equal(t, 0.25, m.Ratio, "clones do not share state")
}

func TestMaxArrange(t *testing.T) {
	ps := Max{}.Arrange(area, 3, 2)
	assert.Equal(t, []Placement{{}, {}, {Rect: area, Visible: true}}, ps)

	ps = Max{}.Arrange(area, 2, -1)
	assert.True(t, ps[0].Visible)
	assert.False(t, ps[1].Visible)
}
