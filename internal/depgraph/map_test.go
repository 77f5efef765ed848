package depgraph

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/simvars/internal/vars"
)

// fixture builds a single-scope tree with the given constants and
// computed variables, wiring dependencies by name through a fake
// extractor. Computed variables are defined in the order given, so
// identifier order follows slice order.
type fixture struct {
	root *Map
	vs   map[string]*vars.Variable
}

func newFixture(t *testing.T, constants []string, computed []string, deps map[string][]string) *fixture {
	t.Helper()
	root := vars.NewRootScope()
	vs := make(map[string]*vars.Variable)

	for _, name := range constants {
		v, err := root.DefineConstant(name, cty.NumberIntVal(1))
		require.NoError(t, err)
		vs[name] = v
	}
	for _, name := range computed {
		v, err := root.DefineComputed(name, nil)
		require.NoError(t, err)
		vs[name] = v
	}

	m, err := Build(context.Background(), root, func(v *vars.Variable) vars.IDSet {
		set := vars.NewIDSet()
		for _, dep := range deps[v.Name()] {
			set.Add(vs[dep].ID())
		}
		return set
	})
	require.NoError(t, err)
	return &fixture{root: m, vs: vs}
}

func (f *fixture) set(names ...string) *vars.Set {
	s := vars.NewSet()
	for _, name := range names {
		s.Add(f.vs[name])
	}
	return s
}

func names(list []*vars.Variable) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = v.Name()
	}
	return out
}

func TestBuild(t *testing.T) {
	t.Run("constants receive no node", func(t *testing.T) {
		f := newFixture(t, []string{"x"}, []string{"y", "z"}, map[string][]string{
			"y": {"x"},
			"z": {"y"},
		})
		assert.Equal(t, 2, f.root.Len())
		_, ok := f.root.Node(f.vs["x"].ID())
		assert.False(t, ok)
	})

	t.Run("edges follow the expressions", func(t *testing.T) {
		f := newFixture(t, []string{"x"}, []string{"y", "z"}, map[string][]string{
			"y": {"x"},
			"z": {"y"},
		})

		y, ok := f.root.Node(f.vs["y"].ID())
		require.True(t, ok)
		assert.True(t, y.DependsOn.Has(f.vs["x"].ID()))
		assert.True(t, y.Modifies.Has(f.vs["z"].ID()))

		z, ok := f.root.Node(f.vs["z"].ID())
		require.True(t, ok)
		assert.True(t, z.DependsOn.Has(f.vs["y"].ID()))
		assert.Empty(t, z.Modifies)
	})

	t.Run("dependency on a constant adds no reverse edge", func(t *testing.T) {
		f := newFixture(t, []string{"x"}, []string{"y"}, map[string][]string{
			"y": {"x"},
		})
		y, _ := f.root.Node(f.vs["y"].ID())
		assert.True(t, y.DependsOn.Has(f.vs["x"].ID()))
		assert.Empty(t, y.Modifies)
		assert.Equal(t, 1, f.root.Len())
	})

	t.Run("inverse-edge invariant holds globally", func(t *testing.T) {
		f := newFixture(t, []string{"c"}, []string{"a", "b", "d", "e"}, map[string][]string{
			"a": {"c"},
			"b": {"a", "c"},
			"d": {"a", "b"},
			"e": {"d", "b"},
		})

		ids := []vars.ID{}
		for _, v := range f.vs {
			if !v.IsConstant() {
				ids = append(ids, v.ID())
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, a := range ids {
			na, ok := f.root.Node(a)
			require.True(t, ok)
			for _, b := range ids {
				nb, _ := f.root.Node(b)
				assert.Equal(t, na.DependsOn.Has(b), nb.Modifies.Has(a),
					"inverse-edge mismatch between %d and %d", a, b)
			}
		}
	})
}

func TestBuild_DuplicateID(t *testing.T) {
	// Two trees built from separate allocators share identifier 0;
	// adopting one into the other must be caught at build time.
	root := vars.NewRootScope()
	_, err := root.DefineComputed("a", nil)
	require.NoError(t, err)

	fragment := vars.NewRootScope()
	_, err = fragment.DefineComputed("b", nil)
	require.NoError(t, err)
	require.NoError(t, root.Adopt("frag", fragment))

	m, err := Build(context.Background(), root, func(*vars.Variable) vars.IDSet {
		return vars.NewIDSet()
	})
	require.Error(t, err)
	assert.Nil(t, m)

	var dup *DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, vars.ID(0), dup.ID)
	assert.Equal(t, "frag.b", dup.Path)
}

func TestBuild_UntrackedDependencyTolerated(t *testing.T) {
	// An extractor may report an identifier with no node (a constant or
	// an unregistered variable); the inversion pass must skip it.
	root := vars.NewRootScope()
	_, err := root.DefineComputed("a", nil)
	require.NoError(t, err)

	m, err := Build(context.Background(), root, func(*vars.Variable) vars.IDSet {
		return vars.NewIDSet(999)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}
