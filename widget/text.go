package widget

import (
	"context"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/prometheus/procfs"
	"go.uber.org/zap"

	"github.com/taobar/taobar/hook"
)

// TextBox shows fixed text.
type TextBox struct {
	Base
}

func NewTextBox(opts Options) *TextBox {
	return &TextBox{Base: newBase("textbox", opts)}
}

func (w *TextBox) Mount(bar Bar, _ *hook.Bus) {
	w.mount(bar)
	w.SetText(w.opts.Text)
}

// WindowName shows the name of the focused window of the bar screen's group.
type WindowName struct {
	Base
}

func NewWindowName(opts Options) *WindowName {
	return &WindowName{Base: newBase("windowname", opts)}
}

func (w *WindowName) Mount(bar Bar, bus *hook.Bus) {
	w.mount(bar)
	w.SetText(w.current())
	bus.OnFocusChange(w.refresh)
	bus.OnSetGroup(w.refresh)
	bus.OnCurrentScreenChange(w.refresh)
	bus.OnClientKilled(func(hook.Window) { w.refresh() })
	bus.OnClientNameUpdated(func(hook.Window) { w.refresh() })
}

func (w *WindowName) refresh() {
	if !w.deliver() {
		return
	}
	w.SetText(w.current())
	w.Redraw()
}

func (w *WindowName) current() string {
	g, ok := screenGroup(w.bar)
	if !ok {
		return ""
	}
	win, ok := g.Focused()
	if !ok {
		return ""
	}
	return truncate(win.Name(), w.opts.MaxChars)
}

// truncate shortens s to max runes, ending in an ellipsis. max <= 0 means no
// limit.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// Clock shows the time in a strftime format.
type Clock struct {
	Base
	now    func() time.Time
	poller *Poller[time.Time]
}

func NewClock(opts Options) *Clock {
	if opts.Format == "" {
		opts.Format = "%H:%M"
	}
	return &Clock{Base: newBase("clock", opts), now: time.Now}
}

func (w *Clock) Mount(bar Bar, _ *hook.Bus) {
	w.mount(bar)
	w.SetText(strftime.Format(w.opts.Format, w.now()))
	w.poller = &Poller[time.Time]{
		Interval: w.opts.interval(time.Second),
		Fetch:    func(context.Context) (time.Time, error) { return w.now(), nil },
		Apply:    w.Tick,
		Post:     bar.Post,
	}
	w.poller.Start(context.Background())
}

// Tick redisplays the clock for t.
func (w *Clock) Tick(t time.Time) {
	if !w.deliver() {
		return
	}
	text := strftime.Format(w.opts.Format, t)
	if Format(w.opts.Fmt, text) == w.text {
		return
	}
	w.SetText(text)
	w.Redraw()
}

func (w *Clock) Unmount() {
	w.Base.Unmount()
	if w.poller != nil {
		w.poller.Stop()
	}
}

// Memory shows memory use from /proc/meminfo.
type Memory struct {
	Base
	proc   string
	poller *Poller[MemInfo]
}

func NewMemory(opts Options) *Memory {
	if opts.Format == "" {
		opts.Format = "{MemUsed:.0f}M/{MemTotal:.0f}M"
	}
	return &Memory{Base: newBase("memory", opts), proc: procfs.DefaultMountPoint}
}

func (w *Memory) Mount(bar Bar, _ *hook.Bus) {
	w.mount(bar)
	w.poller = &Poller[MemInfo]{
		Interval: w.opts.interval(time.Second),
		Fetch: func(context.Context) (MemInfo, error) {
			return ReadMemInfo(w.proc)
		},
		Apply: w.Show,
		Post:  bar.Post,
		OnError: func(err error) {
			w.log.Debug("reading meminfo", zap.Error(err))
		},
	}
	w.poller.Start(context.Background())
}

// Show redisplays the widget for m.
func (w *Memory) Show(m MemInfo) {
	if !w.deliver() {
		return
	}
	text := m.Format(w.opts.Format)
	if Format(w.opts.Fmt, text) == w.text {
		return
	}
	w.SetText(text)
	w.Redraw()
}

func (w *Memory) Unmount() {
	w.Base.Unmount()
	if w.poller != nil {
		w.poller.Stop()
	}
}
