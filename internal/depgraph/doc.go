// Package depgraph builds the global dependency graph of a scope tree's
// computed variables and schedules minimal, dependency-ordered update
// lists for (independent, dependent) variable requests.
//
// A Map is built once from a scope tree and is read-only afterwards;
// concurrent scheduling calls against one Map are safe because all
// per-request state (reachability sets, in-degree counters) is kept in
// request-local tables rather than on the shared nodes.
package depgraph
