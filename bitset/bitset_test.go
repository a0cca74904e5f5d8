package bitset_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/stretchr/testify/require"
)

// TestSetClearGet ASSERTS basic membership transitions.
func TestSetClearGet(t *testing.T) {
	b := bitset.New(10)
	require.False(t, b.Get(3))
	b.Set(3)
	require.True(t, b.Get(3))
	b.Clear(3)
	require.False(t, b.Get(3))
	b.Flip(5)
	require.True(t, b.Get(5))
}

// TestNextSetIterationOrder ASSERTS ascending iteration over set bits
// across a word boundary (n > 64).
func TestNextSetIterationOrder(t *testing.T) {
	b := bitset.New(130)
	for _, i := range []int{0, 63, 64, 65, 129} {
		b.Set(i)
	}
	require.Equal(t, []int{0, 63, 64, 65, 129}, b.Slice())
	require.Equal(t, 5, b.PopCount())
}

// TestSetOperations ASSERTS union/intersect/difference/complement.
func TestSetOperations(t *testing.T) {
	a := bitset.New(8)
	c := bitset.New(8)
	a.Set(0)
	a.Set(1)
	c.Set(1)
	c.Set(2)

	union := a.Clone().Union(c)
	require.Equal(t, []int{0, 1, 2}, union.Slice())

	inter := a.Clone().Intersect(c)
	require.Equal(t, []int{1}, inter.Slice())

	diff := a.Clone().Difference(c)
	require.Equal(t, []int{0}, diff.Slice())

	comp := a.Clone().Complement()
	require.Equal(t, 6, comp.PopCount())
	require.False(t, comp.Get(0))
	require.True(t, comp.Get(2))
}

// TestComplementMasksTail ASSERTS that Complement on a non-multiple-of-64
// length does not leak phantom set bits past n.
func TestComplementMasksTail(t *testing.T) {
	b := bitset.New(5)
	b.Complement()
	require.Equal(t, 5, b.PopCount())
	require.Equal(t, []int{0, 1, 2, 3, 4}, b.Slice())
}

// TestRestrictProjection ASSERTS the order-preserving restriction used by
// SCC/MEC subsystem code: restricting {1,3,5} to a mask of {1,2,3} should
// give a 3-length set with bits 0 and 2 set (positions 1 and 3 in mask
// order).
func TestRestrictProjection(t *testing.T) {
	b := bitset.New(8)
	b.Set(1)
	b.Set(3)
	b.Set(5)

	mask := bitset.New(8)
	mask.Set(1)
	mask.Set(2)
	mask.Set(3)

	r := b.Restrict(mask)
	require.Equal(t, 3, r.Len())
	require.Equal(t, []int{0, 2}, r.Slice())
}

// TestEqualAndNone ASSERTS equality and emptiness checks.
func TestEqualAndNone(t *testing.T) {
	a := bitset.New(4)
	c := bitset.New(4)
	require.True(t, a.Equal(c))
	require.True(t, a.None())
	a.Set(2)
	require.False(t, a.Equal(c))
	require.False(t, a.None())
}
