package algorithm

import (
	"context"
	"math/rand"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// geneticStrategy maintains a small population of base-construction
// variants; each child is a cell-swap "crossover" (plus an occasional
// jury shuffle) of one parent drawn uniformly at random, with no
// fitness-based selection. The best child seen is kept.
type geneticStrategy struct {
	baseStrategy
	populationSize int
	generations    int
}

func newGenetic() Strategy { return &geneticStrategy{} }

func (s *geneticStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("genetic", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.populationSize = paramInt(params, "population_size", 12)
	s.generations = paramInt(params, "generations", 30)
	return nil
}

func (s *geneticStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	population := make([][]domain.Assignment, s.populationSize)
	for i := range population {
		population[i] = s.BuildBaseSolution()
	}

	best := population[0]
	bestScore := s.EvaluateFitness(best)
	for _, ind := range population {
		if score := s.EvaluateFitness(ind); score > bestScore {
			best, bestScore = ind, score
		}
	}

	for gen := 0; gen < s.generations; gen++ {
		select {
		case <-ctx.Done():
			gen = s.generations
			continue
		default:
		}
		next := make([][]domain.Assignment, 0, s.populationSize)
		for i := 0; i < s.populationSize; i++ {
			parent := population[s.rng.Intn(len(population))]
			child := crossoverThenMutate(parent, s.rng)
			if score := s.EvaluateFitness(child); score > bestScore {
				best, bestScore = child, score
			}
			next = append(next, child)
		}
		population = next
	}

	solution, _ := solutionutil.Dedup(s.snapshot, best)
	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        statusFor(solution),
		Parameters:    s.params,
		Stats:         map[string]any{"generations": s.generations, "population_size": s.populationSize},
	}, nil
}

func crossoverThenMutate(parent []domain.Assignment, rng *rand.Rand) []domain.Assignment {
	child := swapCells(parent, rng)
	if rng.Float64() < 0.3 {
		child = shuffleJury(child, rng)
	}
	return child
}
