package model_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/sparse"
	"github.com/stretchr/testify/require"
)

func TestDefaultCheckConfig(t *testing.T) {
	c := model.DefaultCheckConfig()
	require.Equal(t, 1e-6, c.Epsilon)
	require.Equal(t, model.ValueIteration, c.Method)
}

func TestResolveDirectionNoPreDeclaration(t *testing.T) {
	c := model.NewCheckConfig()
	dir, err := c.ResolveDirection(sparse.Max, true)
	require.NoError(t, err)
	require.Equal(t, sparse.Max, dir)

	_, err = c.ResolveDirection(sparse.Max, false)
	require.ErrorIs(t, err, model.ErrNoDirection)
}

func TestResolveDirectionPreDeclaredWins(t *testing.T) {
	c := model.NewCheckConfig(model.WithConfigDirection(sparse.Min))
	dir, err := c.ResolveDirection(sparse.Max, false)
	require.NoError(t, err)
	require.Equal(t, sparse.Min, dir)
}

func TestResolveDirectionMismatchRejected(t *testing.T) {
	c := model.NewCheckConfig(model.WithConfigDirection(sparse.Min))
	_, err := c.ResolveDirection(sparse.Max, true)
	require.ErrorIs(t, err, model.ErrDirectionMismatch)
}
