package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// dragonflyStrategy blends two swarm behaviors per iteration: a
// "static" phase (even iterations) that reshuffles juries within each
// individual's own solution and a "dynamic" phase (odd iterations) that
// swaps cells within it; a move is kept only when it improves that
// individual, and individuals are not pulled toward one another.
type dragonflyStrategy struct {
	baseStrategy
	population int
	iterations int
}

func newDragonfly() Strategy { return &dragonflyStrategy{} }

func (s *dragonflyStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("dragonfly", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.population = paramInt(params, "population", 10)
	s.iterations = paramInt(params, "iterations", 30)
	return nil
}

func (s *dragonflyStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	swarm := make([][]domain.Assignment, s.population)
	for i := range swarm {
		swarm[i] = s.BuildBaseSolution()
	}
	best, bestScore := swarm[0], s.EvaluateFitness(swarm[0])
	for _, d := range swarm {
		if score := s.EvaluateFitness(d); score > bestScore {
			best, bestScore = d, score
		}
	}

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		static := iter%2 == 0
		for i := range swarm {
			var candidate []domain.Assignment
			if static {
				candidate = shuffleJury(swarm[i], s.rng)
			} else {
				candidate = swapCells(swarm[i], s.rng)
			}
			if s.EvaluateFitness(candidate) > s.EvaluateFitness(swarm[i]) {
				swarm[i] = candidate
			}
			if score := s.EvaluateFitness(swarm[i]); score > bestScore {
				best, bestScore = swarm[i], score
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
