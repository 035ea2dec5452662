// Package stack implements the algebraic objects partial-path resolution
// operates on: partial symbol stacks, partial scope stacks, and partial
// paths that carry pre/post-conditions over both plus unification and
// concatenation.
package stack

// Variable is a placeholder for an unknown stack tail, scoped to the
// partial path that introduced it. The zero Variable means "no variable":
// the stack it appears on is fully concrete. Two partial paths being
// concatenated always have disjoint variable namespaces — Concat
// freshens the right-hand path's variables before unifying.
type Variable uint32
