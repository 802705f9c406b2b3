package algorithm

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// tabuSearchStrategy forbids recently-made cell swaps for a fixed tenure,
// with an aspiration override that allows a tabu move through anyway if
// it beats the best solution seen so far.
type tabuSearchStrategy struct {
	baseStrategy
	iterations int
	tenure     int
}

func newTabuSearch() Strategy { return &tabuSearchStrategy{} }

func (s *tabuSearchStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("tabu-search", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.iterations = paramInt(params, "iterations", 150)
	s.tenure = paramInt(params, "tabu_tenure", 10)
	return nil
}

func (s *tabuSearchStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	current := s.BuildBaseSolution()
	best, bestScore := current, s.EvaluateFitness(current)
	tabu := map[string]int{}

	for i := 0; i < s.iterations; i++ {
		select {
		case <-ctx.Done():
			i = s.iterations
			continue
		default:
		}
		if len(current) < 2 {
			break
		}
		a, b := s.rng.Intn(len(current)), s.rng.Intn(len(current))
		if a == b {
			continue
		}
		moveKey := fmt.Sprintf("%d-%d", current[a].ProjectID, current[b].ProjectID)

		candidate := make([]domain.Assignment, len(current))
		copy(candidate, current)
		candidate[a].ClassroomID, candidate[b].ClassroomID = candidate[b].ClassroomID, candidate[a].ClassroomID
		candidate[a].TimeslotID, candidate[b].TimeslotID = candidate[b].TimeslotID, candidate[a].TimeslotID
		score := s.EvaluateFitness(candidate)

		if until, blocked := tabu[moveKey]; blocked && until > i && score <= bestScore {
			continue
		}

		current = candidate
		tabu[moveKey] = i + s.tenure
		if score > bestScore {
			best, bestScore = candidate, score
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
	}, nil
}
