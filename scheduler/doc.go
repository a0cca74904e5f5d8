// Package scheduler records, for every state of a nondeterministic
// model, which row-group-local choice a policy resolved to pick. A
// Scheduler is built once by value iteration (in trackScheduler mode)
// or policy iteration, then immutable.
package scheduler
