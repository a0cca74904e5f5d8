// Package check is the property dispatcher: it converts each property
// kind (§4.8) into calls on reachability, scc, mec, linsolve, minmax,
// reward, and scheduler. For every quantitative property it (a)
// reduces to a maybe set via Prob0/Prob1 (or the MDP-quantified
// variants), (b) fixes the sure-yes/sure-no boundary values, (c)
// builds the maybe-restricted submatrix and right-hand side, (d)
// invokes the linear solver (Dtmc/Ctmc) or the min-max solver
// (Mdp/Ma), and (e) splices the maybe-indexed result back into a
// full-state-indexed vector.
package check
