package hook

// Static implementations of the host interfaces. They hold plain values and
// are used where no window manager is running, such as the preview command.

type StaticLayout string

func (l StaticLayout) Name() string { return string(l) }

type StaticWindow string

func (w StaticWindow) Name() string { return string(w) }

type StaticGroup struct {
	GroupName   string
	GroupLayout Layout
	Clients     []Window
	FocusIndex  int // -1 for no focus.
	Shown       *StaticScreen
}

func (g *StaticGroup) Name() string      { return g.GroupName }
func (g *StaticGroup) Layout() Layout    { return g.GroupLayout }
func (g *StaticGroup) Windows() []Window { return g.Clients }

func (g *StaticGroup) Focused() (Window, bool) {
	if g.FocusIndex < 0 || g.FocusIndex >= len(g.Clients) {
		return nil, false
	}
	return g.Clients[g.FocusIndex], true
}

func (g *StaticGroup) Screen() (Screen, bool) {
	if g.Shown == nil {
		return nil, false
	}
	return g.Shown, true
}

type StaticScreen struct {
	ScreenIndex int
	Current     *StaticGroup
}

func (s *StaticScreen) Index() int { return s.ScreenIndex }

func (s *StaticScreen) Group() (Group, bool) {
	if s.Current == nil {
		return nil, false
	}
	return s.Current, true
}

// Show attaches g to s, detaching any group previously shown there.
func (s *StaticScreen) Show(g *StaticGroup) {
	if s.Current != nil {
		s.Current.Shown = nil
	}
	s.Current = g
	if g != nil {
		g.Shown = s
	}
}
