package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taobar/taobar/hook"
)

func TestTextBox(t *testing.T) {
	w := NewTextBox(Options{Text: " | ", Fmt: "{}"})
	w.Mount(newTestBar("1"), hook.NewBus())
	r := w.Render()
	require.Len(t, r.Spans, 1)
	assert.Equal(t, " | ", r.Spans[0].Text)

	empty := NewTextBox(Options{})
	empty.Mount(newTestBar("1"), hook.NewBus())
	assert.Empty(t, empty.Render().Spans)
}

func TestWindowName(t *testing.T) {
	bar := newTestBar("1", "2")
	bus := hook.NewBus()
	w := NewWindowName(Options{MaxChars: 5})
	w.Mount(bar, bus)
	assert.Empty(t, w.Text())

	g := bar.groups[0]
	addWindow(g, "st")
	bus.FireFocusChange()
	assert.Equal(t, "st", w.Text())

	g.Clients[0] = hook.StaticWindow("vim main.go")
	bus.FireClientNameUpdated(g.Clients[0])
	assert.Equal(t, "vim m…", w.Text())

	bar.screen.Show(bar.groups[1])
	bus.FireSetGroup()
	assert.Empty(t, w.Text())
	assert.Equal(t, 3, bar.draws)
}

func TestClockTick(t *testing.T) {
	w := NewClock(Options{Fmt: "{}"})
	w.now = func() time.Time { return time.Date(2026, 10, 17, 9, 5, 0, 0, time.UTC) }
	bar := newTestBar("1")
	bar.queue = make(chan func())
	w.Mount(bar, hook.NewBus())
	assert.Equal(t, "09:05", w.Text())

	(<-bar.queue)()
	assert.Zero(t, bar.draws, "same minute does not redraw")

	w.Tick(time.Date(2026, 10, 17, 9, 6, 0, 0, time.UTC))
	assert.Equal(t, "09:06", w.Text())
	assert.Equal(t, 1, bar.draws)
	w.Unmount()
}

func TestMemoryShow(t *testing.T) {
	proc := writeProc(t, map[string]string{"meminfo": meminfo})

	w := NewMemory(Options{Format: "MEM {MemUsed:.0f}M"})
	w.proc = proc
	bar := newTestBar("1")
	bar.queue = make(chan func())
	w.Mount(bar, hook.NewBus())
	(<-bar.queue)()
	w.Unmount()
	assert.Equal(t, "MEM 8000M", w.Text())
	assert.Equal(t, 1, bar.draws)

	w.Show(MemInfo{"MemTotal": 2048, "MemFree": 1024})
	assert.Equal(t, "MEM 8000M", w.Text(), "unmounted widgets ignore updates")
}

func TestGroupBox(t *testing.T) {
	bar := newTestBar("1", "2", "3")
	bus := hook.NewBus()
	w := NewGroupBox(Options{
		Foreground: "#d2d9f8",
		Background: "#1a1b26",
		Active:     "#d2d9f8",
		Inactive:   "#5e5f67",
		Highlight:  "#5e5f67",
		Padding:    10,
	})
	w.Mount(bar, bus)
	addWindow(bar.groups[2], "firefox")
	bus.FireClientManaged(bar.groups[2].Clients[0])
	assert.Equal(t, 1, bar.draws)

	fg, _ := ParseColor("#d2d9f8")
	bg, _ := ParseColor("#1a1b26")
	grey, _ := ParseColor("#5e5f67")

	r := w.Render()
	assert.Equal(t, 10, r.Padding)
	assert.Equal(t, []Span{
		{Text: "1", Foreground: fg, Background: grey},
		{Text: "2", Foreground: grey, Background: bg},
		{Text: "3", Foreground: fg, Background: bg},
	}, r.Spans)

	w.Unmount()
	assert.Empty(t, w.Render().Spans)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"battery", "clock", "currentlayout", "groupbox", "memory", "textbox", "volume", "windowname", "wlan"}, Kinds())
	for _, k := range Kinds() {
		w, err := New(k, Options{})
		require.NoError(t, err)
		assert.Equal(t, k, w.Name())
	}
	_, err := New("keyboardlayout", Options{})
	assert.ErrorContains(t, err, "keyboardlayout")
}
