package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// whaleStrategy alternates between "encircling prey" (swap moves pulled
// toward the current best) and "bubble-net" random search moves, the two
// behaviors the Whale Optimization Algorithm switches between by a coin
// flip each iteration.
type whaleStrategy struct {
	baseStrategy
	population int
	iterations int
}

func newWhale() Strategy { return &whaleStrategy{} }

func (s *whaleStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("whale", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.population = paramInt(params, "population", 10)
	s.iterations = paramInt(params, "iterations", 35)
	return nil
}

func (s *whaleStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	pod := make([][]domain.Assignment, s.population)
	for i := range pod {
		pod[i] = s.BuildBaseSolution()
	}
	best, bestScore := pod[0], s.EvaluateFitness(pod[0])
	for _, w := range pod {
		if score := s.EvaluateFitness(w); score > bestScore {
			best, bestScore = w, score
		}
	}

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		for i := range pod {
			var candidate []domain.Assignment
			if s.rng.Float64() < 0.5 {
				candidate = swapCells(best, s.rng)
			} else {
				candidate = relocateOne(pod[i], s.rng)
			}
			if s.EvaluateFitness(candidate) > s.EvaluateFitness(pod[i]) {
				pod[i] = candidate
			}
			if score := s.EvaluateFitness(pod[i]); score > bestScore {
				best, bestScore = pod[i], score
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
