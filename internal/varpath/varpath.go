// Package varpath parses and formats the dotted paths used to address
// variables in the scope tree from the outside world (CLI flags,
// diagnostics), e.g. "physics.grid.dx".
package varpath

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex validates a single path segment, e.g. `dx` or `grid_2`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Path is a parsed variable path: one or more name segments from the
// scope-tree root down to a variable.
type Path struct {
	Segments []string
}

// Parse creates a Path from its canonical dotted string form.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Path{}, fmt.Errorf("variable path cannot be empty")
	}
	segments := strings.Split(raw, ".")
	for _, seg := range segments {
		if seg == "" {
			return Path{}, fmt.Errorf("variable path %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(seg) {
			return Path{}, fmt.Errorf("invalid path segment %q in %q", seg, raw)
		}
	}
	return Path{Segments: segments}, nil
}

// String serializes the path into its canonical dotted form.
func (p Path) String() string {
	return strings.Join(p.Segments, ".")
}
