// Package vars implements the hierarchical variable store: uniquely
// identified variables (constant values or HCL expressions) organized
// into a tree of named scopes. The scope tree is the single source of
// truth for variable identity; the dependency graph in
// internal/depgraph only references variables, it never owns them.
package vars
