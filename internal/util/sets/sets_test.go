package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasics(t *testing.T) {
	s := New("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	assert.True(t, s.Has("c"))
}

func TestUnion(t *testing.T) {
	a := New("x")
	b := New("y")

	a.Union(b)

	assert.True(t, a.Has("x"))
	assert.True(t, a.Has("y"))
	assert.False(t, b.Has("x"))
}

func TestSortedStrings(t *testing.T) {
	s := New("beta", "alpha", "gamma")
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, SortedStrings(s))
}
