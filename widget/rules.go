package widget

// Rule maps the scalars matched by Match to Out.
type Rule[T any] struct {
	Match func(int) bool
	Out   T
}

// Rules is an ordered rule list. The first matching rule wins.
type Rules[T any] []Rule[T]

// Pick returns the output of the first rule matching v.
func (rs Rules[T]) Pick(v int) (T, bool) {
	for _, r := range rs {
		if r.Match(v) {
			return r.Out, true
		}
	}
	var zero T
	return zero, false
}

func AtMost(n int) func(int) bool { return func(v int) bool { return v <= n } }
func Below(n int) func(int) bool  { return func(v int) bool { return v < n } }
func Always(int) bool             { return true }
