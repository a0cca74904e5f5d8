// Package reward wraps the three reward components a model may carry
// — per-state, per-state-action, and per-transition — and collapses
// them into the single per-row vector the equation solvers consume.
package reward
