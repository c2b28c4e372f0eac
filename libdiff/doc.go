// Package libdiff computes the changes between two documents, typically a
// base definition and the result of laying mods over it.
package libdiff
