package layout

// Stack is an ordered window list with a focus. Index 0 is the main pane.
type Stack[T comparable] struct {
	items []T
	focus int
}

func (s *Stack[T]) Len() int   { return len(s.items) }
func (s *Stack[T]) Items() []T { return s.items }

// Focus returns the focused index, or -1 when the stack is empty.
func (s *Stack[T]) Focus() int {
	if len(s.items) == 0 {
		return -1
	}
	return s.focus
}

// Focused returns the focused item.
func (s *Stack[T]) Focused() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[s.focus], true
}

func (s *Stack[T]) Index(t T) int {
	for i, u := range s.items {
		if u == t {
			return i
		}
	}
	return -1
}

// Add inserts t before the focused item and focuses it.
func (s *Stack[T]) Add(t T) {
	if s.Index(t) >= 0 {
		return
	}
	i := s.focus
	if len(s.items) == 0 {
		i = 0
	}
	s.items = append(s.items, t)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = t
	s.focus = i
}

// Remove drops t. Focus moves to the item that took its place, or the new
// last item.
func (s *Stack[T]) Remove(t T) bool {
	i := s.Index(t)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	if s.focus > i || s.focus >= len(s.items) {
		s.focus = max(s.focus-1, 0)
	}
	return true
}

// SetFocus focuses t, if present.
func (s *Stack[T]) SetFocus(t T) bool {
	i := s.Index(t)
	if i < 0 {
		return false
	}
	s.focus = i
	return true
}

// FocusDown and FocusUp move the focus, wrapping around.
func (s *Stack[T]) FocusDown() {
	if n := len(s.items); n > 0 {
		s.focus = (s.focus + 1) % n
	}
}

func (s *Stack[T]) FocusUp() {
	if n := len(s.items); n > 0 {
		s.focus = (s.focus + n - 1) % n
	}
}

// ShuffleDown and ShuffleUp swap the focused item with its neighbour. The
// focus follows the item.
func (s *Stack[T]) ShuffleDown() {
	if s.focus+1 < len(s.items) {
		s.swap(s.focus, s.focus+1)
		s.focus++
	}
}

func (s *Stack[T]) ShuffleUp() {
	if s.focus > 0 && s.focus < len(s.items) {
		s.swap(s.focus, s.focus-1)
		s.focus--
	}
}

// SwapMain swaps the focused item with the main pane. If the main pane is
// focused, it swaps with the first secondary instead.
func (s *Stack[T]) SwapMain() {
	if len(s.items) < 2 {
		return
	}
	if s.focus == 0 {
		s.swap(0, 1)
		return
	}
	s.swap(0, s.focus)
	s.focus = 0
}

// ShuffleLeft moves a secondary item into the main pane. ShuffleRight moves
// the main pane item to the top of the secondaries.
func (s *Stack[T]) ShuffleLeft() {
	if s.focus > 0 {
		s.SwapMain()
	}
}

func (s *Stack[T]) ShuffleRight() {
	if s.focus == 0 && len(s.items) > 1 {
		s.swap(0, 1)
		s.focus = 1
	}
}

func (s *Stack[T]) swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
}
