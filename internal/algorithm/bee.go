package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// beeStrategy splits its colony into employed bees (exploit the current
// best food sources with local swaps) and scout bees (explore fresh
// builds), the two-phase structure of the Artificial Bee Colony algorithm.
type beeStrategy struct {
	baseStrategy
	employedBees int
	scoutBees    int
	cycles       int
}

func newBee() Strategy { return &beeStrategy{} }

func (s *beeStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("bee", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.employedBees = paramInt(params, "employed_bees", 8)
	s.scoutBees = paramInt(params, "scout_bees", 4)
	s.cycles = paramInt(params, "cycles", 30)
	return nil
}

func (s *beeStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	sources := make([][]domain.Assignment, s.employedBees)
	for i := range sources {
		sources[i] = s.BuildBaseSolution()
	}

	for c := 0; c < s.cycles; c++ {
		select {
		case <-ctx.Done():
			c = s.cycles
			continue
		default:
		}
		for i := range sources {
			candidate := swapCells(sources[i], s.rng)
			if s.EvaluateFitness(candidate) > s.EvaluateFitness(sources[i]) {
				sources[i] = candidate
			}
		}
		for i := 0; i < s.scoutBees; i++ {
			worstIdx, _ := worstOf(sources, s.EvaluateFitness)
			scout := s.BuildBaseSolution()
			if s.EvaluateFitness(scout) > s.EvaluateFitness(sources[worstIdx]) {
				sources[worstIdx] = scout
			}
		}
	}

	best, bestScore := sources[0], s.EvaluateFitness(sources[0])
	for _, src := range sources {
		if score := s.EvaluateFitness(src); score > bestScore {
			best, bestScore = src, score
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
