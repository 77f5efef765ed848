package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/simvars/internal/testutil"
	"github.com/vk/simvars/internal/vars"
)

func TestDeps(t *testing.T) {
	root := vars.NewRootScope()
	dx, err := root.DefineConstant("dx", cty.NumberFloatVal(0.1))
	require.NoError(t, err)
	grid, err := root.NewChild("grid")
	require.NoError(t, err)
	n, err := grid.DefineConstant("n", cty.NumberIntVal(100))
	require.NoError(t, err)

	t.Run("direct references", func(t *testing.T) {
		set := Deps(testutil.ParseExpr(t, "dx * grid.n"), root)
		assert.Equal(t, []vars.ID{dx.ID(), n.ID()}, set.Sorted())
	})

	t.Run("relative reference from nested scope", func(t *testing.T) {
		set := Deps(testutil.ParseExpr(t, "n * dx"), grid)
		assert.Equal(t, []vars.ID{dx.ID(), n.ID()}, set.Sorted())
	})

	t.Run("repeated references collapse", func(t *testing.T) {
		set := Deps(testutil.ParseExpr(t, "dx + dx * dx"), root)
		assert.Equal(t, []vars.ID{dx.ID()}, set.Sorted())
	})

	t.Run("function calls are not dependencies", func(t *testing.T) {
		set := Deps(testutil.ParseExpr(t, "max(dx, 0.5)"), root)
		assert.Equal(t, []vars.ID{dx.ID()}, set.Sorted())
	})

	t.Run("unresolvable traversals are ignored", func(t *testing.T) {
		set := Deps(testutil.ParseExpr(t, "mystery.value + dx"), root)
		assert.Equal(t, []vars.ID{dx.ID()}, set.Sorted())
	})

	t.Run("nil expression", func(t *testing.T) {
		assert.Empty(t, Deps(nil, root))
	})

	t.Run("literal expression", func(t *testing.T) {
		assert.Empty(t, Deps(testutil.ParseExpr(t, "40 + 2"), root))
	})
}
