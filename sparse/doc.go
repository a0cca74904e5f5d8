// Package sparse implements a CSR-like, row-grouped sparse matrix: the
// one-step transition-probability representation shared by every model
// kind (DTMC, CTMC, MDP, MA, stochastic game) and every solver in this
// module.
//
// A Matrix is built once through a Builder that streams (row, column,
// value) triples in non-decreasing row order, then is immutable:
// submatrix, transpose, row-sum, and row-group-reduction operations all
// produce fresh matrices or vectors rather than mutating the receiver.
//
// Complexity: row-sum family is O(entries in row); transpose is
// O(rows + entries); multiply and multiply-and-reduce are O(entries).
package sparse
