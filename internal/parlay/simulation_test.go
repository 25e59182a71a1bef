package parlay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/models"
)

func TestSimulateConvergesToCombinedProbability(t *testing.T) {
	legs := []models.ParlayLeg{
		leg("a", "points", 0.6),
		leg("b", "rebounds", 0.55),
		leg("c", "assists", 0.5),
	}

	result, err := Simulate(context.Background(), legs, SimulationConfig{
		Trials:  200000,
		Workers: 4,
		Seed:    42,
	})
	require.NoError(t, err)

	assert.Equal(t, 200000, result.Trials)
	// Analytic combined probability is 0.165; at 200k trials the estimate
	// lands well inside two percentage points of it.
	assert.InDelta(t, 0.165, result.HitRate, 0.02)
	// Expected legs hit per trial is the sum of leg probabilities.
	assert.InDelta(t, 1.65, result.AvgLegsHit, 0.05)
}

func TestSimulateDistributionInvariants(t *testing.T) {
	legs := []models.ParlayLeg{
		leg("a", "points", 0.6),
		leg("b", "rebounds", 0.55),
	}

	result, err := Simulate(context.Background(), legs, SimulationConfig{
		Trials:  5000,
		Workers: 3,
		Seed:    7,
	})
	require.NoError(t, err)

	require.Len(t, result.Distribution, len(legs)+1)

	total := 0
	for _, count := range result.Distribution {
		assert.GreaterOrEqual(t, count, 0)
		total += count
	}
	assert.Equal(t, result.Trials, total)

	assert.Equal(t, float64(result.Distribution[2])/float64(result.Trials), result.HitRate)
}

func TestSimulateReproducibleWithSeed(t *testing.T) {
	legs := []models.ParlayLeg{
		leg("a", "points", 0.4),
		leg("b", "rebounds", 0.7),
	}
	cfg := SimulationConfig{Trials: 10000, Workers: 2, Seed: 99}

	first, err := Simulate(context.Background(), legs, cfg)
	require.NoError(t, err)
	second, err := Simulate(context.Background(), legs, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulateDefaults(t *testing.T) {
	legs := []models.ParlayLeg{leg("a", "points", 0.5)}

	result, err := Simulate(context.Background(), legs, SimulationConfig{Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, DefaultTrials, result.Trials)
}

func TestSimulateArgumentErrors(t *testing.T) {
	_, err := Simulate(context.Background(), nil, SimulationConfig{Seed: 1})
	assert.ErrorIs(t, err, models.ErrNoLegs)

	_, err = Simulate(context.Background(), []models.ParlayLeg{leg("a", "points", 1.2)}, SimulationConfig{Seed: 1})
	assert.ErrorIs(t, err, models.ErrInvalidLegProbability)
}

func TestSimulateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	legs := []models.ParlayLeg{
		leg("a", "points", 0.6),
		leg("b", "rebounds", 0.55),
	}
	_, err := Simulate(ctx, legs, SimulationConfig{Trials: 1000000, Workers: 2, Seed: 3})
	assert.ErrorIs(t, err, context.Canceled)
}
