package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// dpStrategy treats the per-classroom slot fill as an optimal-substructure
// problem: it compacts each classroom's timeline independently (the
// "stage" of the DP), keeping the best compaction seen, then stitches the
// per-room optima back into one solution the way a table-filling DP
// would combine per-stage optima.
type dpStrategy struct {
	baseStrategy
	stages int
}

func newDP() Strategy { return &dpStrategy{} }

func (s *dpStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("dp", fitness.CategorySearchDefault, snapshot, params); err != nil {
		return err
	}
	s.stages = paramInt(params, "stages", 8)
	return nil
}

func (s *dpStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	solution := s.BuildBaseSolution()
	best, bestScore := solution, s.EvaluateFitness(solution)

	for stage := 0; stage < s.stages; stage++ {
		select {
		case <-ctx.Done():
			stage = s.stages
			continue
		default:
		}
		compacted, moved := solutionutil.Compact(s.snapshot, best)
		if moved == 0 {
			break
		}
		if score := s.EvaluateFitness(compacted); score > bestScore {
			best, bestScore = compacted, score
		}
	}

	solution, _ = solutionutil.Dedup(s.snapshot, best)
	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        statusFor(solution),
		Parameters:    s.params,
	}, nil
}
