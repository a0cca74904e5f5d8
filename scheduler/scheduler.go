package scheduler

import "errors"

// ErrChoiceOutOfRange is returned by New when a recorded choice index
// falls outside [0, rowGroupSize(state)).
var ErrChoiceOutOfRange = errors.New("scheduler: choice index out of range")

// Scheduler is a total function from state index to local choice
// index, immutable once built.
type Scheduler struct {
	choices []int
}

// New builds a Scheduler from a per-state choice slice, validating
// each choice against the row-group size reported by groupSizes
// (groupSizes[s] = |row-group(s)|).
func New(choices []int, groupSizes []int) (*Scheduler, error) {
	if len(choices) != len(groupSizes) {
		return nil, errors.New("scheduler: choices and groupSizes length mismatch")
	}
	for s, c := range choices {
		if c < 0 || c >= groupSizes[s] {
			return nil, ErrChoiceOutOfRange
		}
	}
	cp := make([]int, len(choices))
	copy(cp, choices)
	return &Scheduler{choices: cp}, nil
}

// NumStates returns the number of states the scheduler covers.
func (s *Scheduler) NumStates() int { return len(s.choices) }

// GetChoice returns the local row-group choice index for state.
func (s *Scheduler) GetChoice(state int) int { return s.choices[state] }

// Equal reports whether two schedulers make the same choice at every
// state.
func (s *Scheduler) Equal(other *Scheduler) bool {
	if other == nil || len(s.choices) != len(other.choices) {
		return false
	}
	for i, c := range s.choices {
		if other.choices[i] != c {
			return false
		}
	}
	return true
}
