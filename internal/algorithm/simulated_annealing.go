package algorithm

import (
	"context"
	"math"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// simulatedAnnealingStrategy perturbs the current solution and accepts
// worsening moves with probability exp(-delta/temperature), cooling the
// temperature geometrically each iteration (grounded on the cooling
// schedule used by the timetabling corpus's SA solver).
type simulatedAnnealingStrategy struct {
	baseStrategy
	iterations      int
	initialTemp     float64
	coolingFactor   float64
}

func newSimulatedAnnealing() Strategy { return &simulatedAnnealingStrategy{} }

func (s *simulatedAnnealingStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("simulated-annealing", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.iterations = paramInt(params, "iterations", 200)
	s.initialTemp = paramFloat(params, "initial_temperature", 100)
	s.coolingFactor = paramFloat(params, "cooling_factor", 0.95)
	return nil
}

func (s *simulatedAnnealingStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	current := s.BuildBaseSolution()
	currentScore := s.EvaluateFitness(current)
	best, bestScore := current, currentScore
	temperature := s.initialTemp

	for i := 0; i < s.iterations; i++ {
		select {
		case <-ctx.Done():
			i = s.iterations
			continue
		default:
		}
		candidate := swapCells(current, s.rng)
		candidateScore := s.EvaluateFitness(candidate)
		delta := candidateScore - currentScore

		if delta >= 0 || s.rng.Float64() < math.Exp(delta/math.Max(temperature, 1e-6)) {
			current, currentScore = candidate, candidateScore
			if currentScore > bestScore {
				best, bestScore = current, currentScore
			}
		}
		temperature *= s.coolingFactor
	}

	solution, _ := solutionutil.Dedup(s.snapshot, best)
	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        statusFor(solution),
		Parameters:    s.params,
		Stats:         map[string]any{"final_temperature": temperature},
	}, nil
}
