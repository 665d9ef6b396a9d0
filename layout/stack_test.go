package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stackOf(items ...string) *Stack[string] {
	s := &Stack[string]{}
	for i := len(items) - 1; i >= 0; i-- {
		s.Add(items[i])
	}
	return s
}

func TestStackAddBeforeCurrent(t *testing.T) {
	s := &Stack[string]{}
	assert.Equal(t, -1, s.Focus())
	s.Add("a")
	s.Add("b")
	assert.Equal(t, []string{"b", "a"}, s.Items())
	s.FocusDown()
	s.Add("c")
	assert.Equal(t, []string{"b", "c", "a"}, s.Items())
	f, ok := s.Focused()
	assert.True(t, ok)
	assert.Equal(t, "c", f)

	s.Add("c")
	assert.Equal(t, 3, s.Len(), "duplicates are ignored")
}

func TestStackRemove(t *testing.T) {
	s := stackOf("a", "b", "c")
	s.SetFocus("c")
	assert.True(t, s.Remove("a"))
	assert.Equal(t, 1, s.Focus())
	assert.True(t, s.Remove("c"))
	assert.Equal(t, 0, s.Focus())
	assert.False(t, s.Remove("c"))
	assert.True(t, s.Remove("b"))
	assert.Equal(t, -1, s.Focus())
	_, ok := s.Focused()
	assert.False(t, ok)
}

func TestStackFocusWraps(t *testing.T) {
	s := stackOf("a", "b", "c")
	s.FocusUp()
	assert.Equal(t, 2, s.Focus())
	s.FocusDown()
	assert.Equal(t, 0, s.Focus())
}

func TestStackShuffle(t *testing.T) {
	s := stackOf("a", "b", "c")
	s.ShuffleDown()
	assert.Equal(t, []string{"b", "a", "c"}, s.Items())
	assert.Equal(t, 1, s.Focus())
	s.ShuffleUp()
	assert.Equal(t, []string{"a", "b", "c"}, s.Items())
	s.ShuffleUp()
	assert.Equal(t, []string{"a", "b", "c"}, s.Items())

	s.SetFocus("c")
	s.ShuffleLeft()
	assert.Equal(t, []string{"c", "b", "a"}, s.Items())
	assert.Equal(t, 0, s.Focus())
	s.ShuffleRight()
	assert.Equal(t, []string{"b", "c", "a"}, s.Items())
	assert.Equal(t, 1, s.Focus())
}

func TestStackSwapMain(t *testing.T) {
	s := stackOf("a", "b", "c")
	s.SwapMain()
	assert.Equal(t, []string{"b", "a", "c"}, s.Items())
	assert.Equal(t, 0, s.Focus())
	s.SetFocus("c")
	s.SwapMain()
	assert.Equal(t, []string{"c", "a", "b"}, s.Items())
	assert.Equal(t, 0, s.Focus())
}
