package algorithm

import (
	"context"
	"sort"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// nsga2Strategy is a simplified NSGA-II: a population is scored across
// the individual fitness axes (not just the weighted total) and ranked
// by non-domination before breeding the next generation, approximating
// multi-objective pareto search over all eight axes that Metrics.Score
// reports (the six weighted axes plus the two advisory ones).
type nsga2Strategy struct {
	baseStrategy
	populationSize int
	generations    int
}

func newNSGA2() Strategy { return &nsga2Strategy{} }

func (s *nsga2Strategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("nsga-ii", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.populationSize = paramInt(params, "population_size", 16)
	s.generations = paramInt(params, "generations", 25)
	return nil
}

type nsgaIndividual struct {
	solution []domain.Assignment
	axes     map[string]float64
	total    float64
}

func (s *nsga2Strategy) evaluate(solution []domain.Assignment) nsgaIndividual {
	result := s.metrics.Score(s.snapshot, solution, s.weights)
	return nsgaIndividual{solution: solution, axes: result.Axes, total: result.Total}
}

// dominates reports whether a is at least as good as b on every axis and
// strictly better on one — the Pareto dominance relation.
func (a nsgaIndividual) dominates(b nsgaIndividual) bool {
	strictlyBetter := false
	for axis, va := range a.axes {
		vb := b.axes[axis]
		if va < vb {
			return false
		}
		if va > vb {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

func (s *nsga2Strategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	population := make([]nsgaIndividual, s.populationSize)
	for i := range population {
		population[i] = s.evaluate(s.BuildBaseSolution())
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
			child := swapCells(parent, s.rng)
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

// selectParetoFront keeps the top `size` individuals, ranking
// non-dominated individuals first and breaking ties by weighted total.
func selectParetoFront(pool []nsgaIndividual, size int) []nsgaIndividual {
	rank := make([]int, len(pool))
	for i, a := range pool {
		for j, b := range pool {
			if i != j && b.dominates(a) {
				rank[i]++
			}
		}
	}
	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		if rank[order[i]] != rank[order[j]] {
			return rank[order[i]] < rank[order[j]]
		}
		return pool[order[i]].total > pool[order[j]].total
	})
	if size > len(order) {
		size = len(order)
	}
	out := make([]nsgaIndividual, size)
	for i := 0; i < size; i++ {
		out[i] = pool[order[i]]
	}
	return out
}
