package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// greedyLocalSearchStrategy pairs the greedy constructive heuristic with
// a first-improvement local search: after the initial build, it accepts
// the first neighboring move found to improve fitness and keeps
// repeating until a pass yields no improving move.
type greedyLocalSearchStrategy struct {
	baseStrategy
	maxPasses         int
	candidatesPerPass int
}

func newGreedyLocalSearch() Strategy { return &greedyLocalSearchStrategy{} }

func (s *greedyLocalSearchStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("greedy-local-search", fitness.CategorySearchDefault, snapshot, params); err != nil {
		return err
	}
	s.maxPasses = paramInt(params, "max_passes", 20)
	s.candidatesPerPass = paramInt(params, "candidates_per_pass", 6)
	return nil
}

func (s *greedyLocalSearchStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	solution := s.BuildBaseSolution()
	score := s.EvaluateFitness(solution)

	for pass := 0; pass < s.maxPasses; pass++ {
		select {
		case <-ctx.Done():
			pass = s.maxPasses
			continue
		default:
		}
		improved := false
		for c := 0; c < s.candidatesPerPass; c++ {
			candidate := swapCells(solution, s.rng)
			if candidateScore := s.EvaluateFitness(candidate); candidateScore > score {
				solution, score = candidate, candidateScore
				improved = true
				break
			}
		}
		if !improved {
			break
		}
	}

	solution, _ = solutionutil.Dedup(s.snapshot, solution)
	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        statusFor(solution),
		Parameters:    s.params,
	}, nil
}
