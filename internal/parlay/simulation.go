package parlay

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/prop-edge/internal/models"
)

// DefaultTrials is the trial count used when the config leaves it unset.
const DefaultTrials = 10000

// trialBatch is how many trials each worker runs between context checks.
const trialBatch = 1024

// SimulationConfig configures a Monte Carlo run over a parlay's legs.
type SimulationConfig struct {
	Trials  int
	Workers int
	// Seed makes runs reproducible; zero falls back to the wall clock.
	Seed int64
}

// Simulate draws one uniform random number per leg per trial, counts a leg
// as hit when the draw falls below its probability, and counts the trial
// as a full parlay hit only when every leg hits. With enough trials the
// hit rate converges to the analytic combined probability; the value of
// the simulation is the distribution of partial hits, which the analytic
// product does not give.
//
// The simulation is CPU-bound with no I/O; trials are sharded across
// workers and the context is checked between batches so long runs can be
// cancelled.
func Simulate(ctx context.Context, legs []models.ParlayLeg, cfg SimulationConfig) (models.SimulationResult, error) {
	if len(legs) == 0 {
		return models.SimulationResult{}, models.ErrNoLegs
	}
	for i, leg := range legs {
		if leg.Probability <= 0 || leg.Probability >= 1 || math.IsNaN(leg.Probability) {
			return models.SimulationResult{}, fmt.Errorf("leg %d: %w", i, models.ErrInvalidLegProbability)
		}
	}

	trials := cfg.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	shards := make([][]int, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		share := trials / workers
		if w < trials%workers {
			share++
		}
		wg.Add(1)
		go func(w, share int) {
			defer wg.Done()
			shards[w], errs[w] = runShard(ctx, legs, share, seed+int64(w))
		}(w, share)
	}
	wg.Wait()

	distribution := make([]int, len(legs)+1)
	for w := range shards {
		if errs[w] != nil {
			return models.SimulationResult{}, errs[w]
		}
		for k, count := range shards[w] {
			distribution[k] += count
		}
	}

	totalLegsHit := 0
	for k, count := range distribution {
		totalLegsHit += k * count
	}

	return models.SimulationResult{
		Trials:       trials,
		HitRate:      float64(distribution[len(legs)]) / float64(trials),
		AvgLegsHit:   float64(totalLegsHit) / float64(trials),
		Distribution: distribution,
	}, nil
}

func runShard(ctx context.Context, legs []models.ParlayLeg, trials int, seed int64) ([]int, error) {
	rng := rand.New(rand.NewSource(seed))
	distribution := make([]int, len(legs)+1)

	for done := 0; done < trials; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch := trialBatch
		if remaining := trials - done; remaining < batch {
			batch = remaining
		}
		for t := 0; t < batch; t++ {
			hits := 0
			for _, leg := range legs {
				if rng.Float64() < leg.Probability {
					hits++
				}
			}
			distribution[hits]++
		}
		done += batch
	}

	return distribution, nil
}
