// Package minmax computes the min/max fixpoint value vector of a
// row-grouped (MDP/MA) transition matrix against a per-row bias
// vector, x = opt over actions a of (P_a·x + b_a), by two methods:
// ValueIteration (repeated sparse.MultiplyAndReduce sweeps to a
// convergence threshold) and PolicyIteration (alternating linear
// solves of the scheduler-induced system via linsolve with greedy
// scheduler improvement). Both report the induced scheduler alongside
// the value vector.
package minmax
