package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// deepSearchStrategy runs a depth-first exploration: from the current
// solution it commits to the best of a handful of sampled moves and
// recurses into it immediately (depth-first, not breadth-first like
// a-star), backtracking only in the sense of keeping the best-of-run
// incumbent, bounded by a time_limit.
type deepSearchStrategy struct {
	baseStrategy
	maxDepth       int
	samplesPerNode int
	timeLimit      time.Duration
}

func newDeepSearch() Strategy { return &deepSearchStrategy{} }

func (s *deepSearchStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("deep-search", fitness.CategorySearchDefault, snapshot, params); err != nil {
		return err
	}
	s.maxDepth = paramInt(params, "max_depth", 40)
	s.samplesPerNode = paramInt(params, "samples_per_node", 5)
	s.timeLimit = time.Duration(paramFloat(params, "time_limit", 15)) * time.Second
	return nil
}

func (s *deepSearchStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeLimit)
	defer cancel()

	current := s.BuildBaseSolution()
	best, bestScore := current, s.EvaluateFitness(current)

	for depth := 0; depth < s.maxDepth; depth++ {
		select {
		case <-ctx.Done():
			depth = s.maxDepth
			continue
		default:
		}
		var frontierBest []domain.Assignment
		frontierScore := -1.0
		for i := 0; i < s.samplesPerNode; i++ {
			candidate := swapCells(current, s.rng)
			if score := s.EvaluateFitness(candidate); score > frontierScore {
				frontierBest, frontierScore = candidate, score
			}
		}
		current = frontierBest
		if frontierScore > bestScore {
			best, bestScore = current, frontierScore
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
		Stats:         map[string]any{"time_limit_seconds": s.timeLimit.Seconds()},
	}, nil
}
