// Package hook is the event bus between the window manager and its bar
// widgets. The window manager fires lifecycle events; widgets subscribe typed
// callbacks when they are mounted.
//
// A Bus is not safe for concurrent use. All Subscribe and Fire calls happen on
// the window manager's dispatch goroutine, and handlers run to completion, in
// registration order, before Fire returns. Handlers must not block.
package hook

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Layout is a tiling layout as seen by the bar.
type Layout interface {
	Name() string
}

// Window is a managed client window.
type Window interface {
	Name() string
}

// Group is a named set of windows with a layout. A group is shown on at most
// one screen at a time.
type Group interface {
	Name() string
	Layout() Layout
	Windows() []Window
	// Focused returns the group's focused window, if any.
	Focused() (Window, bool)
	// Screen returns the screen the group is shown on. The second result is
	// false when the group is not shown, or is mid-transition between
	// screens.
	Screen() (Screen, bool)
}

// Screen is a physical output. Screens compare equal by Index.
type Screen interface {
	Index() int
	// Group returns the group shown on the screen. The second result is false
	// while the screen has no group attached.
	Group() (Group, bool)
}

// SameScreen reports whether a and b are the same screen.
func SameScreen(a, b Screen) bool {
	return a.Index() == b.Index()
}

// Names of the hooks, used as metric labels and in logs.
const (
	LayoutChange        = "layout_change"
	ClientKilled        = "client_killed"
	ClientManaged       = "client_managed"
	CurrentScreenChange = "current_screen_change"
	SetGroup            = "setgroup"
	FocusChange         = "focus_change"
	ClientNameUpdated   = "client_name_updated"
	StartupOnce         = "startup_once"
)

// Bus holds the subscriber lists. The zero value is not usable; call NewBus.
type Bus struct {
	layoutChange        []func(Layout, Group)
	clientKilled        []func(Window)
	clientManaged       []func(Window)
	currentScreenChange []func()
	setGroup            []func()
	focusChange         []func()
	clientNameUpdated   []func(Window)
	startupOnce         []func()

	startedUp bool
	fired     *prometheus.CounterVec
}

// Option configures a Bus.
type Option func(*Bus)

// WithRegisterer counts fired events in a taobar_hook_events_total counter
// registered with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(b *Bus) {
		b.fired = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taobar_hook_events_total",
			Help: "Number of lifecycle events fired, by hook.",
		}, []string{"hook"})
		r.MustRegister(b.fired)
	}
}

func NewBus(opts ...Option) *Bus {
	b := &Bus{}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Bus) count(name string) {
	if b.fired != nil {
		b.fired.WithLabelValues(name).Inc()
	}
}

func (b *Bus) OnLayoutChange(f func(Layout, Group)) { b.layoutChange = append(b.layoutChange, f) }
func (b *Bus) OnClientKilled(f func(Window))        { b.clientKilled = append(b.clientKilled, f) }
func (b *Bus) OnClientManaged(f func(Window))       { b.clientManaged = append(b.clientManaged, f) }
func (b *Bus) OnCurrentScreenChange(f func())       { b.currentScreenChange = append(b.currentScreenChange, f) }
func (b *Bus) OnSetGroup(f func())                  { b.setGroup = append(b.setGroup, f) }
func (b *Bus) OnFocusChange(f func())               { b.focusChange = append(b.focusChange, f) }
func (b *Bus) OnClientNameUpdated(f func(Window))   { b.clientNameUpdated = append(b.clientNameUpdated, f) }
func (b *Bus) OnStartupOnce(f func())               { b.startupOnce = append(b.startupOnce, f) }

func (b *Bus) FireLayoutChange(l Layout, g Group) {
	b.count(LayoutChange)
	for _, f := range b.layoutChange {
		f(l, g)
	}
}

func (b *Bus) FireClientKilled(w Window) {
	b.count(ClientKilled)
	for _, f := range b.clientKilled {
		f(w)
	}
}

func (b *Bus) FireClientManaged(w Window) {
	b.count(ClientManaged)
	for _, f := range b.clientManaged {
		f(w)
	}
}

func (b *Bus) FireCurrentScreenChange() {
	b.count(CurrentScreenChange)
	for _, f := range b.currentScreenChange {
		f()
	}
}

func (b *Bus) FireSetGroup() {
	b.count(SetGroup)
	for _, f := range b.setGroup {
		f()
	}
}

func (b *Bus) FireFocusChange() {
	b.count(FocusChange)
	for _, f := range b.focusChange {
		f()
	}
}

func (b *Bus) FireClientNameUpdated(w Window) {
	b.count(ClientNameUpdated)
	for _, f := range b.clientNameUpdated {
		f(w)
	}
}

// FireStartupOnce runs the startup-once handlers. Calls after the first are
// no-ops.
func (b *Bus) FireStartupOnce() {
	if b.startedUp {
		return
	}
	b.startedUp = true
	b.count(StartupOnce)
	for _, f := range b.startupOnce {
		f()
	}
}
