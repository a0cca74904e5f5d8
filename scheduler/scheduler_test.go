package scheduler_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/scheduler"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesChoiceRange(t *testing.T) {
	s, err := scheduler.New([]int{0, 1}, []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, 0, s.GetChoice(0))
	require.Equal(t, 1, s.GetChoice(1))

	_, err = scheduler.New([]int{2}, []int{2})
	require.ErrorIs(t, err, scheduler.ErrChoiceOutOfRange)
}

func TestEqual(t *testing.T) {
	a, err := scheduler.New([]int{0, 1}, []int{2, 2})
	require.NoError(t, err)
	b, err := scheduler.New([]int{0, 1}, []int{2, 2})
	require.NoError(t, err)
	c, err := scheduler.New([]int{0, 0}, []int{2, 2})
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))
}

func TestMutatingInputDoesNotAffectScheduler(t *testing.T) {
	choices := []int{0, 1}
	s, err := scheduler.New(choices, []int{2, 2})
	require.NoError(t, err)
	choices[0] = 1
	require.Equal(t, 0, s.GetChoice(0))
}
