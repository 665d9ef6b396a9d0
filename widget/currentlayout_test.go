package widget

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taobar/taobar/hook"
)

func TestLayoutText(t *testing.T) {
	assert.Equal(t, "[M]", LayoutText(MaxLayout, 0))
	for _, n := range []int{1, 2, 9, 10, 123} {
		assert.Equal(t, fmt.Sprintf("[%d]", n), LayoutText(MaxLayout, n))
	}
	for _, layout := range []string{"monadtall", "floating", ""} {
		for _, n := range []int{0, 1, 7} {
			assert.Equal(t, TiledGlyph, LayoutText(layout, n), "layout %q count %d", layout, n)
		}
	}
}

func TestCurrentLayoutMount(t *testing.T) {
	bar := newTestBar("1", "2")
	g := bar.groups[0]
	g.GroupLayout = hook.StaticLayout(MaxLayout)
	addWindow(g, "a")
	addWindow(g, "b")

	w := NewCurrentLayout(Options{Fmt: "{} "})
	assert.Equal(t, Uninitialized, w.State())
	w.Mount(bar, hook.NewBus())
	assert.Equal(t, Subscribed, w.State())
	assert.Equal(t, "[2] ", w.Text())
}

func TestCurrentLayoutLayoutChange(t *testing.T) {
	bar := newTestBar("1", "2")
	bus := hook.NewBus()
	w := NewCurrentLayout(Options{})
	w.Mount(bar, bus)
	require.Equal(t, TiledGlyph, w.Text())

	g := bar.groups[0]
	g.GroupLayout = hook.StaticLayout(MaxLayout)
	bus.FireLayoutChange(g.GroupLayout, g)
	assert.Equal(t, Active, w.State())
	assert.Equal(t, "[M]", w.Text())
	assert.Equal(t, 1, bar.draws)

	g.GroupLayout = hook.StaticLayout("monadtall")
	bus.FireLayoutChange(g.GroupLayout, g)
	assert.Equal(t, TiledGlyph, w.Text())
	assert.Equal(t, 2, bar.draws)
}

func TestCurrentLayoutIgnoresOtherScreens(t *testing.T) {
	bar := newTestBar("1", "2")
	bus := hook.NewBus()
	w := NewCurrentLayout(Options{})
	w.Mount(bar, bus)

	other := &hook.StaticScreen{ScreenIndex: 1}
	g2 := bar.groups[1]
	other.Show(g2)
	g2.GroupLayout = hook.StaticLayout(MaxLayout)
	bus.FireLayoutChange(g2.GroupLayout, g2)

	assert.Equal(t, TiledGlyph, w.Text())
	assert.Equal(t, MaxLayout, w.Layout(), "layout identity is stored regardless of screen")
	assert.Zero(t, bar.draws)

	// A group that is not shown anywhere does not redraw either.
	g3 := &hook.StaticGroup{GroupName: "3", GroupLayout: hook.StaticLayout(MaxLayout), FocusIndex: -1}
	bus.FireLayoutChange(g3.GroupLayout, g3)
	assert.Zero(t, bar.draws)
}

func TestCurrentLayoutCountsWindows(t *testing.T) {
	bar := newTestBar("1", "2")
	bus := hook.NewBus()
	g := bar.groups[0]
	g.GroupLayout = hook.StaticLayout(MaxLayout)
	w := NewCurrentLayout(Options{})
	w.Mount(bar, bus)

	bus.FireClientManaged(addWindow(g, "a"))
	assert.Equal(t, "[1]", w.Text())
	bus.FireClientManaged(addWindow(g, "b"))
	assert.Equal(t, "[2]", w.Text())
	bus.FireClientKilled(removeWindow(g))
	assert.Equal(t, "[1]", w.Text())
	assert.Equal(t, 1, w.WindowCount())

	// Switching the screen to an empty group.
	g2 := bar.groups[1]
	g2.GroupLayout = hook.StaticLayout(MaxLayout)
	bar.screen.Show(g2)
	bus.FireLayoutChange(g2.GroupLayout, g2)
	bus.FireSetGroup()
	assert.Equal(t, "[M]", w.Text())
}

func TestCurrentLayoutUnavailableReferences(t *testing.T) {
	bar := newTestBar("1")
	bus := hook.NewBus()
	g := bar.groups[0]
	g.GroupLayout = hook.StaticLayout(MaxLayout)
	addWindow(g, "a")
	w := NewCurrentLayout(Options{})
	w.Mount(bar, bus)
	require.Equal(t, "[1]", w.Text())

	bar.lost = true
	bus.FireCurrentScreenChange()
	assert.Equal(t, 0, w.WindowCount())
	assert.Equal(t, "[M]", w.Text())

	bar.lost = false
	bar.screen.Show(nil)
	bus.FireSetGroup()
	assert.Equal(t, "[M]", w.Text())
}

func TestCurrentLayoutRapidEvents(t *testing.T) {
	bar := newTestBar("1")
	bus := hook.NewBus()
	g := bar.groups[0]
	g.GroupLayout = hook.StaticLayout(MaxLayout)
	addWindow(g, "a")
	w := NewCurrentLayout(Options{})
	w.Mount(bar, bus)

	// The host updates its model for both events before either is
	// delivered.
	managed := addWindow(g, "b")
	killed := removeWindow(g)
	bus.FireClientManaged(managed)
	bus.FireClientKilled(killed)
	assert.Equal(t, "[1]", w.Text())
}

func TestCurrentLayoutUnmount(t *testing.T) {
	bar := newTestBar("1")
	bus := hook.NewBus()
	g := bar.groups[0]
	w := NewCurrentLayout(Options{})
	w.Mount(bar, bus)
	w.Unmount()
	assert.Equal(t, Unmounted, w.State())

	g.GroupLayout = hook.StaticLayout(MaxLayout)
	bus.FireLayoutChange(g.GroupLayout, g)
	bus.FireClientManaged(addWindow(g, "a"))
	assert.Equal(t, TiledGlyph, w.Text())
	assert.Equal(t, Unmounted, w.State())
	assert.Zero(t, bar.draws)
}
