package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// comprehensiveStrategy is the orchestrator's fallback target: it runs
// the shared construction heuristic and then every C3 post-processing
// pass in sequence (dedup, gap-free compaction, earliest-first reflow,
// late-slot relocation, jury pairing), so it is the one strategy
// guaranteed to return a non-degenerate solution whenever the snapshot
// has any projects to place at all.
type comprehensiveStrategy struct {
	baseStrategy
	refinementRounds int
}

func newComprehensive() Strategy { return &comprehensiveStrategy{} }

func (s *comprehensiveStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("comprehensive", fitness.CategorySearchDefault, snapshot, params); err != nil {
		return err
	}
	s.refinementRounds = paramInt(params, "refinement_rounds", 3)
	return nil
}

func (s *comprehensiveStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	solution := s.BuildBaseSolution()

	for round := 0; round < s.refinementRounds; round++ {
		select {
		case <-ctx.Done():
			round = s.refinementRounds
			continue
		default:
		}
		solution, _ = solutionutil.Dedup(s.snapshot, solution)
		solution, _ = solutionutil.GapFreeOptimize(s.snapshot, solution)
		solution, _ = solutionutil.ReflowEarliestFirst(s.snapshot, solution)
		solution, _, _ = solutionutil.RelocateLateSlots(s.snapshot, solution)
		solution = PairAdjacentInstructors(s.snapshot, solution)
	}

	solution, _ = solutionutil.Dedup(s.snapshot, solution)
	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        StatusSuccess,
		Parameters:    s.params,
		Stats:         map[string]any{"refinement_rounds": s.refinementRounds},
	}, nil
}
