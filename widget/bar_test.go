package widget

import (
	"context"
	"testing"

	"go.uber.org/goleak"

	"github.com/taobar/taobar/hook"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testBar is a Bar on one screen. Posted functions run on the caller's
// goroutine unless queue is set, in which case they are sent there.
type testBar struct {
	screen *hook.StaticScreen
	groups []*hook.StaticGroup
	lost   bool
	height int
	draws  int
	queue  chan func()
}

func newTestBar(groupNames ...string) *testBar {
	b := &testBar{screen: &hook.StaticScreen{}, height: 20}
	for _, name := range groupNames {
		b.groups = append(b.groups, &hook.StaticGroup{
			GroupName:   name,
			GroupLayout: hook.StaticLayout("monadtall"),
			FocusIndex:  -1,
		})
	}
	if len(b.groups) > 0 {
		b.screen.Show(b.groups[0])
	}
	return b
}

func (b *testBar) Screen() (hook.Screen, bool) {
	if b.lost {
		return nil, false
	}
	return b.screen, true
}

func (b *testBar) Groups() []hook.Group {
	gs := make([]hook.Group, len(b.groups))
	for i, g := range b.groups {
		gs[i] = g
	}
	return gs
}

func (b *testBar) Height() int { return b.height }
func (b *testBar) Draw()       { b.draws++ }

func (b *testBar) Post(ctx context.Context, f func()) bool {
	if b.queue == nil {
		f()
		return true
	}
	select {
	case b.queue <- f:
		return true
	case <-ctx.Done():
		return false
	}
}

// addWindow appends a window to g and returns it.
func addWindow(g *hook.StaticGroup, name string) hook.Window {
	w := hook.StaticWindow(name)
	g.Clients = append(g.Clients, w)
	g.FocusIndex = len(g.Clients) - 1
	return w
}

// removeWindow drops the last window of g.
func removeWindow(g *hook.StaticGroup) hook.Window {
	w := g.Clients[len(g.Clients)-1]
	g.Clients = g.Clients[:len(g.Clients)-1]
	g.FocusIndex = len(g.Clients) - 1
	return w
}
