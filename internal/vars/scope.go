package vars

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// idAlloc hands out variable identifiers for one scope tree. It lives
// on the root scope and is shared by all descendants.
type idAlloc struct {
	next ID
}

func (a *idAlloc) allocate() ID {
	id := a.next
	a.next++
	return id
}

// Scope is one node of the hierarchical variable store. It owns its
// local variables and an ordered list of named child scopes. The root
// scope has an empty name and no parent.
type Scope struct {
	name     string
	parent   *Scope
	children []*Scope
	byName   map[string]*Scope
	locals   map[string]*Variable
	// order preserves variable definition order for deterministic
	// full-tree enumeration.
	order []string
	alloc *idAlloc
}

// NewRootScope creates an empty scope tree root with a fresh identifier
// allocator.
func NewRootScope() *Scope {
	return &Scope{
		byName: make(map[string]*Scope),
		locals: make(map[string]*Variable),
		alloc:  &idAlloc{},
	}
}

// Name returns the scope's name; the root scope's name is empty.
func (s *Scope) Name() string { return s.name }

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Children returns the scope's child scopes in definition order. The
// returned slice must not be modified.
func (s *Scope) Children() []*Scope { return s.children }

// Child returns the direct child scope with the given name.
func (s *Scope) Child(name string) (*Scope, bool) {
	ch, ok := s.byName[name]
	return ch, ok
}

// Local returns the variable defined directly in this scope under the
// given name.
func (s *Scope) Local(name string) (*Variable, bool) {
	v, ok := s.locals[name]
	return v, ok
}

// Locals returns the variables defined directly in this scope, in
// definition order.
func (s *Scope) Locals() []*Variable {
	out := make([]*Variable, len(s.order))
	for i, name := range s.order {
		out[i] = s.locals[name]
	}
	return out
}

// Chain returns the scope chain from the tree root down to s,
// inclusive.
func (s *Scope) Chain() []*Scope {
	var chain []*Scope
	for sc := s; sc != nil; sc = sc.parent {
		chain = append(chain, sc)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// NewChild creates and attaches a named child scope. The name must not
// collide with an existing child or local variable.
func (s *Scope) NewChild(name string) (*Scope, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	ch := &Scope{
		name:   name,
		parent: s,
		byName: make(map[string]*Scope),
		locals: make(map[string]*Variable),
		alloc:  s.alloc,
	}
	s.children = append(s.children, ch)
	s.byName[name] = ch
	return ch, nil
}

// Adopt attaches an independently built root scope as a named child of
// s. Variable identifiers are NOT re-allocated: the adopted subtree
// keeps the IDs its own allocator produced, so composing fragments from
// separate allocators can introduce identifier collisions. Dependency
// map construction detects and reports those.
func (s *Scope) Adopt(name string, sub *Scope) error {
	if sub.parent != nil {
		return fmt.Errorf("scope %q is already attached to a tree", sub.name)
	}
	if err := s.checkName(name); err != nil {
		return err
	}
	sub.name = name
	sub.parent = s
	s.children = append(s.children, sub)
	s.byName[name] = sub
	return nil
}

// DefineConstant defines a constant variable with a fixed value.
func (s *Scope) DefineConstant(name string, val cty.Value) (*Variable, error) {
	v, err := s.define(name)
	if err != nil {
		return nil, err
	}
	v.constant = true
	v.value = val
	return v, nil
}

// DefineComputed defines a variable whose value is computed from an
// expression over other variables.
func (s *Scope) DefineComputed(name string, expr hcl.Expression) (*Variable, error) {
	v, err := s.define(name)
	if err != nil {
		return nil, err
	}
	v.expr = expr
	return v, nil
}

func (s *Scope) define(name string) (*Variable, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	v := &Variable{
		id:    s.alloc.allocate(),
		name:  name,
		scope: s,
		value: cty.NilVal,
	}
	s.locals[name] = v
	s.order = append(s.order, name)
	return v, nil
}

func (s *Scope) checkName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name in scope %q", s.name)
	}
	if _, exists := s.locals[name]; exists {
		return fmt.Errorf("name %q already defines a variable in scope %q", name, s.name)
	}
	if _, exists := s.byName[name]; exists {
		return fmt.Errorf("name %q already names a child scope of %q", name, s.name)
	}
	return nil
}

// Walk enumerates every variable in the subtree rooted at s, local
// variables in definition order before children depth-first. Walk
// returns the first error the callback reports.
func (s *Scope) Walk(fn func(*Variable) error) error {
	for _, name := range s.order {
		if err := fn(s.locals[name]); err != nil {
			return err
		}
	}
	for _, ch := range s.children {
		if err := ch.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// LookupPath resolves a dotted path, starting at this scope and walking
// outward through enclosing scopes; the nearest match wins. Each
// candidate scope matches when the leading segments name a run of
// nested child scopes and the following segment names a local variable.
func (s *Scope) LookupPath(segments []string) (*Variable, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.matchPath(segments); ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve resolves an HCL traversal to a variable using the same scope
// chain rules as LookupPath. Trailing traversal steps beyond the
// matched variable (attribute or index access into its value) are
// ignored: the dependency is on the variable itself.
func (s *Scope) Resolve(traversal hcl.Traversal) (*Variable, bool) {
	segments := traversalSegments(traversal)
	return s.LookupPath(segments)
}

// matchPath tries to resolve a path within this scope only, descending
// through child scopes while segments match and accepting a local
// variable at any depth. Segments past the variable are attribute
// access into its value and do not affect the match.
func (s *Scope) matchPath(segments []string) (*Variable, bool) {
	sc := s
	for i, seg := range segments {
		if v, ok := sc.locals[seg]; ok {
			return v, true
		}
		ch, ok := sc.byName[seg]
		if !ok || i == len(segments)-1 {
			return nil, false
		}
		sc = ch
	}
	return nil, false
}

// traversalSegments flattens the attribute-access prefix of a traversal
// into name segments, stopping at the first non-attribute step.
func traversalSegments(traversal hcl.Traversal) []string {
	if len(traversal) == 0 {
		return nil
	}
	segments := []string{traversal.RootName()}
	for _, step := range traversal[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			break
		}
		segments = append(segments, attr.Name)
	}
	return segments
}
