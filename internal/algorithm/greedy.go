package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// greedyStrategy runs the shared construction heuristic with no further
// refinement pass — the simplest registered strategy, useful as a speed
// and quality baseline for the others.
type greedyStrategy struct {
	baseStrategy
}

func newGreedy() Strategy { return &greedyStrategy{} }

func (s *greedyStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	return s.initBase("greedy", fitness.CategorySearchDefault, snapshot, params)
}

func (s *greedyStrategy) Optimize(_ context.Context) (Result, error) {
	start := time.Now()
	solution := s.BuildBaseSolution()
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
