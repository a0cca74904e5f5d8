// Package scc decomposes a sparse transition graph into strongly
// connected components using the Gabow/Cheriyan/Mehlhorn path-based
// algorithm: a single depth-first walk with two auxiliary stacks, a
// preorder stack tracking the current path and a representative stack
// tracking candidate SCC roots. No recursion-free rewrite is needed —
// the traversal is implemented with an explicit stack to avoid
// recursion-depth limits on large models.
package scc
