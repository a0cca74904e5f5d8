// Package probcheck is the numerical analysis core of a probabilistic
// model checker: given a finite-state stochastic model (DTMC, CTMC, MDP,
// MA, or a stochastic two-player game) and a temporal-logic property, it
// computes either the exact probability of the property holding from
// each state, or the expected accumulated reward until a goal is
// reached.
//
// The root package holds no executable code; it documents how the
// subpackages fit together:
//
//	numeric/      — the scalar field abstraction (float64, exact rational)
//	bitset/       — dense packed boolean sets, the lingua franca of state sets
//	sparse/       — CSR-like sparse transition matrices, builder, row-group ops
//	model/        — the Dtmc/Ctmc/Mdp/Ma/Smg sum type, labeling, configuration
//	reachability/ — prob-0 / prob-1 graph preprocessing
//	scc/          — strongly-connected-component decomposition
//	mec/          — maximal-end-component decomposition (nondeterministic models)
//	linsolve/     — Jacobi / Gauss-Seidel / SOR / power iteration
//	minmax/       — value iteration / policy iteration for MDP/MA/Smg
//	reward/       — state, state-action, and transition reward wrappers
//	scheduler/    — per-state chosen-action records
//	check/        — the property dispatcher tying all of the above together
//	modelio/      — the persisted triples/label text formats
//
// The pipeline is: model + property -> graph preprocess (prob-0/1) ->
// decomposition (SCC/MEC) -> equation setup (submatrix + rhs) -> solver
// (iterate) -> result. Package check drives this pipeline with one
// function per property kind: Until, UntilBounded, TimeBoundedUntil,
// ExpectedReachReward, CumulativeReward, InstantaneousReward and
// LongRunAverage.
package probcheck
