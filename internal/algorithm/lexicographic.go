package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// lexicographicStrategy optimizes the fitness axes in strict priority
// order rather than a single weighted sum: it only accepts a candidate
// move that does not regress a higher-priority axis, and among those
// prefers the one improving the current axis, one axis at a time down
// the priority list (coverage, then gap, then duplicate, then the rest).
type lexicographicStrategy struct {
	baseStrategy
	iterations int
	priority   []string
}

func newLexicographic() Strategy { return &lexicographicStrategy{} }

func (s *lexicographicStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("lexicographic", fitness.CategorySearchDefault, snapshot, params); err != nil {
		return err
	}
	s.iterations = paramInt(params, "iterations", 60)
	s.priority = []string{"coverage", "gap_penalty", "duplicate_penalty", "slot_reward", "load_balance", "late_slot_penalty"}
	return nil
}

func (s *lexicographicStrategy) axisVector(solution []domain.Assignment) fitness.Result {
	f := fitness.Metrics{}
	return f.Score(s.snapshot, solution, s.weights)
}

// betterLex reports whether candidate lexicographically dominates
// current across s.priority, comparing axis-by-axis until a tie breaks.
func (s *lexicographicStrategy) betterLex(candidate, current fitness.Result) bool {
	for _, axis := range s.priority {
		c := candidate.Axes[axis]
		cur := current.Axes[axis]
		if c > cur {
			return true
		}
		if c < cur {
			return false
		}
	}
	return candidate.Total > current.Total
}

func (s *lexicographicStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	solution := s.BuildBaseSolution()
	current := s.axisVector(solution)

	for i := 0; i < s.iterations; i++ {
		select {
		case <-ctx.Done():
			i = s.iterations
			continue
		default:
		}
		candidate := swapCells(solution, s.rng)
		candidateVec := s.axisVector(candidate)
		if s.betterLex(candidateVec, current) {
			solution, current = candidate, candidateVec
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
