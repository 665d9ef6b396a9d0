package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taobar/taobar/hook"
	"github.com/taobar/taobar/layout"
	"github.com/taobar/taobar/widget"
)

func mountLayout(t *testing.T, s *screen) *widget.CurrentLayout {
	t.Helper()
	s.bar = &bar{screen: s, height: 26}
	w := widget.NewCurrentLayout(widget.Options{Fmt: "{}"})
	w.Mount(s.bar, bus)
	return w
}

func TestShowSwapsGroupsBetweenScreens(t *testing.T) {
	defer func(b *hook.Bus) { bus = b }(bus)
	bus = hook.NewBus()

	a := newGroup("a", []layout.Layout{layout.Max{}})
	b := newGroup("b", []layout.Layout{layout.NewMonadTall(0.55)})
	b.stack.Add(&window{name: "st"})
	b.stack.Add(&window{name: "firefox"})
	s0 := &screen{index: 0, group: a}
	s1 := &screen{index: 1, group: b}
	a.screen, b.screen = s0, s1

	w0, w1 := mountLayout(t, s0), mountLayout(t, s1)
	require.Equal(t, "[M]", w0.Text())
	require.Equal(t, "[]=", w1.Text())

	g0 := show(s0, b)
	assert.Same(t, a, g0)
	assert.Same(t, b, s0.group)
	assert.Same(t, a, s1.group)
	assert.Same(t, s1, a.screen)

	announceShown(g0, b)
	assert.Equal(t, "[]=", w0.Text())
	assert.Equal(t, "[M]", w1.Text())
	assert.Equal(t, "monadtall", w0.Layout())
	assert.Equal(t, 2, w0.WindowCount())
	assert.Equal(t, 0, w1.WindowCount())
	assert.True(t, s0.bar.dirty)
	assert.True(t, s1.bar.dirty)
}

func TestShowHiddenGroup(t *testing.T) {
	defer func(b *hook.Bus) { bus = b }(bus)
	bus = hook.NewBus()

	a := newGroup("a", []layout.Layout{layout.NewMonadTall(0.55)})
	c := newGroup("c", []layout.Layout{layout.Max{}})
	c.stack.Add(&window{name: "mpv"})
	s0 := &screen{group: a}
	a.screen = s0
	w0 := mountLayout(t, s0)

	g0 := show(s0, c)
	assert.Same(t, a, g0)
	_, ok := a.Screen()
	assert.False(t, ok, "the replaced group is no longer shown")

	announceShown(g0, c)
	assert.Equal(t, "[1]", w0.Text())
}
