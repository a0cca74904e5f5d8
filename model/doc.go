// Package model defines the Model sum type — {Dtmc, Ctmc, Mdp, Ma,
// Smg} — that carries a transition matrix together with everything
// the property dispatcher needs to interpret it: an optional exit-rate
// vector and Markovian/probabilistic split (Ctmc/Ma), an optional
// per-row-group player partition (Smg), a state labeling, and a map of
// named reward models. It also defines CheckConfig, the plain
// configuration record the dispatcher and solvers consume.
package model
