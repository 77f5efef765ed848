package depgraph

import "github.com/vk/simvars/internal/vars"

// Updater is a caching façade over UpdateOrder. It accumulates the
// independent and dependent variable sets of a request and amortizes
// the scheduling work across reads: mutations invalidate the cached
// order, reads recompute it at most once.
//
// An Updater is for single-owner use; callers sharing one across
// goroutines must synchronize externally.
type Updater struct {
	m           *Map
	independent *vars.Set
	dependent   *vars.Set
	list        []*vars.Variable
	valid       bool
}

// NewUpdater creates an Updater over the given dependency map with
// empty variable sets. The empty request is trivially valid and yields
// an empty update list.
func NewUpdater(m *Map) *Updater {
	return &Updater{
		m:           m,
		independent: vars.NewSet(),
		dependent:   vars.NewSet(),
		valid:       true,
	}
}

// AddIndependent adds a variable whose freshly set value should trigger
// recomputation. Adding invalidates the cached order, even when the
// variable was already present.
func (u *Updater) AddIndependent(v *vars.Variable) {
	u.independent.Add(v)
	u.valid = false
}

// AddDependent adds a variable whose up-to-date value is required.
// Adding invalidates the cached order, even when the variable was
// already present.
func (u *Updater) AddDependent(v *vars.Variable) {
	u.dependent.Add(v)
	u.valid = false
}

// Valid reports whether the cached update list reflects the current
// variable sets.
func (u *Updater) Valid() bool { return u.valid }

// Recompute rebuilds the cached update list from the current sets. It
// is a no-op while the cache is valid. On failure the previous cached
// list is left untouched and the Updater stays invalid.
func (u *Updater) Recompute() error {
	if u.valid {
		return nil
	}
	list, err := u.m.UpdateOrder(u.independent, u.dependent)
	if err != nil {
		return err
	}
	u.list = list
	u.valid = true
	return nil
}

// UpdateList returns the ordered list of variables to re-evaluate,
// recomputing it first when a set mutation has invalidated the cache.
// The returned slice is the cached order; callers must not modify it.
func (u *Updater) UpdateList() ([]*vars.Variable, error) {
	if err := u.Recompute(); err != nil {
		return nil, err
	}
	return u.list, nil
}
