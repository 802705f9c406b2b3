package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// simplexStrategy walks the feasible-solution "vertices" one pivot at a
// time: each step tries the earliest-first reflow against the current
// solution and only accepts it when it strictly improves fitness,
// mirroring the simplex method's monotonic pivot-to-improve discipline.
type simplexStrategy struct {
	baseStrategy
	timeLimit time.Duration
}

func newSimplex() Strategy { return &simplexStrategy{} }

func (s *simplexStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("simplex", fitness.CategoryMathProgConstraint, snapshot, params); err != nil {
		return err
	}
	s.timeLimit = time.Duration(paramFloat(params, "time_limit", 10)) * time.Second
	return nil
}

func (s *simplexStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeLimit)
	defer cancel()

	solution := s.BuildBaseSolution()
	score := s.EvaluateFitness(solution)

	for {
		select {
		case <-ctx.Done():
			goto done
		default:
		}
		pivoted, moved := solutionutil.ReflowEarliestFirst(s.snapshot, solution)
		if moved == 0 {
			break
		}
		pivotedScore := s.EvaluateFitness(pivoted)
		if pivotedScore <= score {
			break
		}
		solution, score = pivoted, pivotedScore
	}
done:
	solution, _ = solutionutil.Dedup(s.snapshot, solution)

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
