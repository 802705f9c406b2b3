package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// harmonyStrategy keeps a small harmony memory of candidate solutions and
// improvises new ones by recombining cells from memory with occasional
// random pitch adjustment, the discrete analogue of Harmony Search.
type harmonyStrategy struct {
	baseStrategy
	memorySize       int
	improvisations   int
	considerationRate float64
}

func newHarmony() Strategy { return &harmonyStrategy{} }

func (s *harmonyStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("harmony", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.memorySize = paramInt(params, "memory_size", 8)
	s.improvisations = paramInt(params, "improvisations", 50)
	s.considerationRate = paramFloat(params, "harmony_memory_consideration_rate", 0.9)
	return nil
}

func (s *harmonyStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	memory := make([][]domain.Assignment, s.memorySize)
	for i := range memory {
		memory[i] = s.BuildBaseSolution()
	}
	best, bestScore := memory[0], s.EvaluateFitness(memory[0])
	for _, m := range memory {
		if score := s.EvaluateFitness(m); score > bestScore {
			best, bestScore = m, score
		}
	}

	for i := 0; i < s.improvisations; i++ {
		select {
		case <-ctx.Done():
			i = s.improvisations
			continue
		default:
		}
		var candidate []domain.Assignment
		if s.rng.Float64() < s.considerationRate {
			candidate = memory[s.rng.Intn(len(memory))]
			candidate = swapCells(candidate, s.rng)
		} else {
			candidate = s.BuildBaseSolution()
		}
		score := s.EvaluateFitness(candidate)
		worstIdx, worstScore := worstOf(memory, s.EvaluateFitness)
		if score > worstScore {
			memory[worstIdx] = candidate
		}
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

func worstOf(pool [][]domain.Assignment, score func([]domain.Assignment) float64) (int, float64) {
	worstIdx, worstScore := 0, score(pool[0])
	for i, p := range pool {
		if v := score(p); v < worstScore {
			worstIdx, worstScore = i, v
		}
	}
	return worstIdx, worstScore
}
