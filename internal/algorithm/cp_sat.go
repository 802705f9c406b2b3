package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// cpSatStrategy models the problem as constraint-satisfaction: build a
// feasible base assignment, then run a bounded constructive-repair loop
// that repeatedly asks the C3 utilities to certify zero conflicts,
// treating any remaining conflict as a constraint violation to repair
// via a local swap, honoring a wall-clock time_limit the way a real
// CP-SAT solve would.
type cpSatStrategy struct {
	baseStrategy
	timeLimit time.Duration
}

func newCPSAT() Strategy { return &cpSatStrategy{} }

func (s *cpSatStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("cp-sat", fitness.CategoryMathProgConstraint, snapshot, params); err != nil {
		return err
	}
	s.timeLimit = time.Duration(paramFloat(params, "time_limit", 10)) * time.Second
	return nil
}

func (s *cpSatStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeLimit)
	defer cancel()

	solution := s.BuildBaseSolution()
	for {
		select {
		case <-ctx.Done():
			goto done
		default:
		}
		report := solutionutil.DetectConflicts(s.snapshot, solution)
		if report.Empty() {
			break
		}
		solution = swapCells(solution, s.rng)
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
