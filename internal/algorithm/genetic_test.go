package algorithm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneticStrategyOptimizeHonorsParams(t *testing.T) {
	snap := newStrategySnapshot(t)
	strat := newGenetic()
	require.NoError(t, strat.Initialize(context.Background(), snap, map[string]any{
		"seed":            int64(1),
		"population_size": 4,
		"generations":     3,
	}))

	result, err := strat.Optimize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "genetic", result.AlgorithmTag)
	assert.Equal(t, 3, result.Stats["generations"])
	assert.Equal(t, 4, result.Stats["population_size"])
	assert.NotEmpty(t, result.Assignments)
}

func TestGeneticStrategyOptimizeRespectsContextCancellation(t *testing.T) {
	snap := newStrategySnapshot(t)
	strat := newGenetic()
	require.NoError(t, strat.Initialize(context.Background(), snap, map[string]any{
		"seed":            int64(1),
		"population_size": 4,
		"generations":     1000,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := strat.Optimize(ctx)
	require.NoError(t, err)
	assert.NotNil(t, result.Assignments)
}

func TestGeneticStrategyDefaultParams(t *testing.T) {
	snap := newStrategySnapshot(t)
	strat := newGenetic()
	require.NoError(t, strat.Initialize(context.Background(), snap, nil))

	result, err := strat.Optimize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, result.Stats["generations"])
	assert.Equal(t, 12, result.Stats["population_size"])
}
