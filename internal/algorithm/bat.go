package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// batStrategy varies its per-individual "pulse rate" over the run:
// early iterations favor exploration (full rebuilds, echolocation
// "loudness" high), later iterations favor local exploitation around the
// current best — the Bat Algorithm's loudness/pulse-rate annealing.
type batStrategy struct {
	baseStrategy
	population int
	iterations int
}

func newBat() Strategy { return &batStrategy{} }

func (s *batStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("bat", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.population = paramInt(params, "population", 10)
	s.iterations = paramInt(params, "iterations", 35)
	return nil
}

func (s *batStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	bats := make([][]domain.Assignment, s.population)
	for i := range bats {
		bats[i] = s.BuildBaseSolution()
	}
	best, bestScore := bats[0], s.EvaluateFitness(bats[0])
	for _, b := range bats {
		if score := s.EvaluateFitness(b); score > bestScore {
			best, bestScore = b, score
		}
	}

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		pulseRate := float64(iter) / float64(s.iterations)
		for i := range bats {
			var candidate []domain.Assignment
			if s.rng.Float64() < pulseRate {
				candidate = swapCells(best, s.rng)
			} else {
				candidate = s.BuildBaseSolution()
			}
			if s.EvaluateFitness(candidate) > s.EvaluateFitness(bats[i]) {
				bats[i] = candidate
			}
			if score := s.EvaluateFitness(bats[i]); score > bestScore {
				best, bestScore = bats[i], score
			}
		}
	}

	solution, _ := solutionutil.Dedup(s.snapshot, best)
	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        statusFor(solution),
		Parameters:    s.params,
	}, nil
}
