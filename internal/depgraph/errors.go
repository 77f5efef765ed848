package depgraph

import (
	"fmt"

	"github.com/vk/simvars/internal/vars"
)

// DuplicateIDError reports two variables in one scope tree sharing an
// identifier, discovered during dependency map construction. The build
// is aborted and no map is returned; the caller must fix the tree
// (typically an Adopt of a fragment from a foreign allocator) and
// rebuild.
type DuplicateIDError struct {
	ID   vars.ID
	Path string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate variable id %d: %s is already registered", e.ID, e.Path)
}

// CycleError reports that the requested subgraph cannot be ordered. It
// carries the identifiers still unordered when the cycle was detected,
// in ascending order, to aid diagnosis. No partial update list is
// produced.
type CycleError struct {
	Remaining []vars.ID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency among variables %v", e.Remaining)
}

// UnknownVariableError reports a scheduling request naming a computed
// variable that is absent from the dependency map, which means the
// variable belongs to a different tree than the one the map was built
// from. Constants are never an error: they hold no node and are
// silently ignored.
type UnknownVariableError struct {
	ID   vars.ID
	Path string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("variable %s (id %d) is not registered in the dependency map", e.Path, e.ID)
}
