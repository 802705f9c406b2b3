package algorithm

import (
	"context"
	"sort"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// hybridCPNSGAStrategy combines a constraint-repair phase (borrowed from
// the cp-sat family: repeatedly swap away conflicts) with an NSGA-II
// style Pareto selection over the repaired population, giving constraint
// feasibility priority before multi-objective ranking takes over.
type hybridCPNSGAStrategy struct {
	baseStrategy
	populationSize int
	generations    int
	repairRounds   int
}

func newHybridCPNSGA() Strategy { return &hybridCPNSGAStrategy{} }

func (s *hybridCPNSGAStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("hybrid-cp-nsga", fitness.CategoryMathProgConstraint, snapshot, params); err != nil {
		return err
	}
	s.populationSize = paramInt(params, "population_size", 16)
	s.generations = paramInt(params, "generations", 25)
	s.repairRounds = paramInt(params, "repair_rounds", 3)
	return nil
}

func (s *hybridCPNSGAStrategy) repair(solution []domain.Assignment) []domain.Assignment {
	for i := 0; i < s.repairRounds; i++ {
		report := solutionutil.DetectConflicts(s.snapshot, solution)
		if report.Empty() {
			break
		}
		solution = swapCells(solution, s.rng)
	}
	return solution
}

func (s *hybridCPNSGAStrategy) evaluate(solution []domain.Assignment) nsgaIndividual {
	result := s.metrics.Score(s.snapshot, solution, s.weights)
	return nsgaIndividual{solution: solution, axes: result.Axes, total: result.Total}
}

func (s *hybridCPNSGAStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	population := make([]nsgaIndividual, s.populationSize)
	for i := range population {
		population[i] = s.evaluate(s.repair(s.BuildBaseSolution()))
	}

	for gen := 0; gen < s.generations; gen++ {
		select {
		case <-ctx.Done():
			gen = s.generations
			continue
		default:
		}
		offspring := make([]nsgaIndividual, 0, s.populationSize)
		for i := 0; i < s.populationSize; i++ {
			parent := population[s.rng.Intn(len(population))].solution
			child := s.repair(swapCells(parent, s.rng))
			offspring = append(offspring, s.evaluate(child))
		}
		population = selectParetoFront(append(population, offspring...), s.populationSize)
	}

	sort.Slice(population, func(i, j int) bool { return population[i].total > population[j].total })
	best := population[0].solution

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
