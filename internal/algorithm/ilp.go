package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// ilpStrategy builds a base solution and then applies
// solutionutil.Compact repeatedly until a pass moves nothing or the
// time_limit expires. No LP or integer program is solved.
type ilpStrategy struct {
	baseStrategy
	timeLimit time.Duration
}

func newILP() Strategy { return &ilpStrategy{} }

func (s *ilpStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("ilp", fitness.CategoryMathProgConstraint, snapshot, params); err != nil {
		return err
	}
	s.timeLimit = time.Duration(paramFloat(params, "time_limit", 15)) * time.Second
	return nil
}

func (s *ilpStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeLimit)
	defer cancel()

	solution := s.BuildBaseSolution()
	best, bestScore := solution, s.EvaluateFitness(solution)

	for {
		select {
		case <-ctx.Done():
			goto done
		default:
		}
		compacted, moved := solutionutil.Compact(s.snapshot, solution)
		if moved == 0 {
			break
		}
		solution = compacted
		if score := s.EvaluateFitness(solution); score > bestScore {
			best, bestScore = solution, score
		}
	}
done:
	solution, _ = solutionutil.Dedup(s.snapshot, best)

	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        statusFor(solution),
		Parameters:    s.params,
		Stats:         map[string]any{"time_limit_seconds": s.timeLimit.Seconds()},
	}, nil
}
