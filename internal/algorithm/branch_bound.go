package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// branchBoundStrategy keeps a running incumbent and explores a bounded
// number of sibling branches per depth by perturbing the incumbent and
// only descending into a branch when its bound (fitness) beats the
// current incumbent, pruning the rest — the branch-and-bound
// incumbent/bound/prune loop, time-boxed by time_limit.
type branchBoundStrategy struct {
	baseStrategy
	branchingFactor int
	maxDepth        int
	timeLimit       time.Duration
}

func newBranchBound() Strategy { return &branchBoundStrategy{} }

func (s *branchBoundStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("branch-bound", fitness.CategoryMathProgConstraint, snapshot, params); err != nil {
		return err
	}
	s.branchingFactor = paramInt(params, "branching_factor", 4)
	s.maxDepth = paramInt(params, "max_depth", 20)
	s.timeLimit = time.Duration(paramFloat(params, "time_limit", 20)) * time.Second
	return nil
}

func (s *branchBoundStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeLimit)
	defer cancel()

	incumbent := s.BuildBaseSolution()
	incumbentScore := s.EvaluateFitness(incumbent)

	for depth := 0; depth < s.maxDepth; depth++ {
		select {
		case <-ctx.Done():
			depth = s.maxDepth
			continue
		default:
		}
		improved := false
		for b := 0; b < s.branchingFactor; b++ {
			branch := swapCells(incumbent, s.rng)
			if score := s.EvaluateFitness(branch); score > incumbentScore {
				incumbent, incumbentScore = branch, score
				improved = true
			}
		}
		if !improved {
			break
		}
	}

	solution, _ := solutionutil.Dedup(s.snapshot, incumbent)
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
