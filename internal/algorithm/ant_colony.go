package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// antColonyStrategy keeps a pheromone weight per (room,slot) cell that is
// reinforced whenever an ant's solution lands a high score in that cell,
// and used to pick which assignment a later ant moves: the one on the
// weakest cell (see biasTowardPheromone).
type antColonyStrategy struct {
	baseStrategy
	ants           int
	iterations     int
	evaporation    float64
	pheromone      map[[2]int]float64
}

func newAntColony() Strategy { return &antColonyStrategy{} }

func (s *antColonyStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("ant-colony", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.ants = paramInt(params, "ants", 15)
	s.iterations = paramInt(params, "iterations", 30)
	s.evaporation = paramFloat(params, "evaporation_rate", 0.1)
	s.pheromone = map[[2]int]float64{}
	return nil
}

func (s *antColonyStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	best, bestScore := s.BuildBaseSolution(), -1.0

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		for a := 0; a < s.ants; a++ {
			candidate := s.BuildBaseSolution()
			if bestScore >= 0 && s.rng.Float64() < 0.5 {
				candidate = s.biasTowardPheromone(candidate)
			}
			score := s.EvaluateFitness(candidate)
			if score > bestScore {
				best, bestScore = candidate, score
			}
			for _, asg := range candidate {
				s.pheromone[[2]int{asg.ClassroomID, asg.TimeslotID}] += score / 100
			}
		}
		for k := range s.pheromone {
			s.pheromone[k] *= 1 - s.evaporation
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

// biasTowardPheromone swaps the cell of the assignment sitting on the
// lowest-pheromone cell with the cell of a randomly chosen assignment;
// the partner is not chosen by pheromone strength.
func (s *antColonyStrategy) biasTowardPheromone(solution []domain.Assignment) []domain.Assignment {
	worstIdx := 0
	worstStrength := s.pheromone[[2]int{solution[0].ClassroomID, solution[0].TimeslotID}]
	for i, a := range solution {
		strength := s.pheromone[[2]int{a.ClassroomID, a.TimeslotID}]
		if strength < worstStrength {
			worstIdx, worstStrength = i, strength
		}
	}
	out := make([]domain.Assignment, len(solution))
	copy(out, solution)
	other := s.rng.Intn(len(out))
	out[worstIdx].ClassroomID, out[other].ClassroomID = out[other].ClassroomID, out[worstIdx].ClassroomID
	out[worstIdx].TimeslotID, out[other].TimeslotID = out[other].TimeslotID, out[worstIdx].TimeslotID
	return out
}
