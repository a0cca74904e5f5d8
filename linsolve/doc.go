// Package linsolve solves Ax = b for A = I - P̃, the maybe-state
// submatrix of a stochastic transition matrix left after graph
// preprocessing, via three classical stationary iterative methods —
// Jacobi, Gauss-Seidel, successive over-relaxation — plus a
// repeated-multiply helper for step-bounded and instantaneous-reward
// queries that need M^k x rather than a fixed point.
package linsolve
