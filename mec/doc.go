// Package mec computes maximal end components of a row-grouped
// (MDP/MA) transition matrix restricted to a subsystem: iteratively
// decompose into SCCs, strip any state with no row-group choice
// entirely inside its SCC, propagate that removal backward to
// predecessors that lose their own last safe choice, and re-decompose
// the surviving set until a full pass removes nothing.
package mec
