package vars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSet(t *testing.T) {
	root := NewRootScope()
	a, err := root.DefineConstant("a", cty.Zero)
	require.NoError(t, err)
	b, err := root.DefineConstant("b", cty.Zero)
	require.NoError(t, err)

	s := NewSet(b)
	assert.True(t, s.Add(a))
	assert.False(t, s.Add(a), "re-inserting a member is a no-op")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(a.ID()))

	sorted := s.Sorted()
	require.Len(t, sorted, 2)
	assert.Same(t, a, sorted[0])
	assert.Same(t, b, sorted[1])
}

func TestIDSet(t *testing.T) {
	s := NewIDSet(3, 1, 2)
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(7))
	assert.Equal(t, []ID{1, 2, 3}, s.Sorted())
}
