package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// fireflyStrategy gives each firefly that sees a brighter one (higher
// fitness = higher brightness) a swap move on its own layout, plus a
// relocation with probability randomness, and keeps the move only when
// it improves the firefly; the brighter firefly's layout is not copied.
type fireflyStrategy struct {
	baseStrategy
	population int
	iterations int
	randomness float64
}

func newFirefly() Strategy { return &fireflyStrategy{} }

func (s *fireflyStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("firefly", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.population = paramInt(params, "population", 10)
	s.iterations = paramInt(params, "iterations", 40)
	s.randomness = paramFloat(params, "randomness", 0.2)
	return nil
}

func (s *fireflyStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	flies := make([][]domain.Assignment, s.population)
	for i := range flies {
		flies[i] = s.BuildBaseSolution()
	}

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		for i := range flies {
			for j := range flies {
				if s.EvaluateFitness(flies[j]) <= s.EvaluateFitness(flies[i]) {
					continue
				}
				moved := swapCells(flies[i], s.rng)
				if s.rng.Float64() < s.randomness {
					moved = relocateOne(moved, s.rng)
				}
				if s.EvaluateFitness(moved) > s.EvaluateFitness(flies[i]) {
					flies[i] = moved
				}
			}
		}
	}

	best, bestScore := flies[0], s.EvaluateFitness(flies[0])
	for _, f := range flies {
		if score := s.EvaluateFitness(f); score > bestScore {
			best, bestScore = f, score
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
