// Package reachability implements the non-stochastic graph
// preprocessing that classifies states into sure-yes, sure-no, and
// maybe sets before any numeric solve: the probability-0 sets (the
// "Prob0" family, each the complement of a backward positive-probability
// reachability set) and sure reachability (the "Prob1" family), each in a deterministic (DTMC/CTMC) and a
// quantified existential/universal (MDP/MA) form.
package reachability
