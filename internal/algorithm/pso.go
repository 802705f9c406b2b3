package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// psoStrategy encodes each particle as a full candidate solution and
// perturbs it with a relocation (plus a cell swap half the time), keeping
// the move when it improves that particle; the swarm's global best is
// tracked and returned but does not steer the moves. PSO is exempted from the orchestrator's fallback-on-degenerate
// rule (§4.5 step 7): it always reports success, even when coverage ends
// up below 100%, rather than ever declaring itself degenerate.
type psoStrategy struct {
	baseStrategy
	swarmSize  int
	iterations int
}

func newPSO() Strategy { return &psoStrategy{} }

func (s *psoStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("pso", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.swarmSize = paramInt(params, "swarm_size", 10)
	s.iterations = paramInt(params, "iterations", 40)
	return nil
}

func (s *psoStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	particles := make([][]domain.Assignment, s.swarmSize)
	for i := range particles {
		particles[i] = s.BuildBaseSolution()
	}
	globalBest := particles[0]
	globalBestScore := s.EvaluateFitness(globalBest)
	for _, p := range particles {
		if score := s.EvaluateFitness(p); score > globalBestScore {
			globalBest, globalBestScore = p, score
		}
	}

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		for i, p := range particles {
			moved := relocateOne(p, s.rng)
			if s.rng.Float64() < 0.5 {
				moved = swapCells(moved, s.rng)
			}
			if s.EvaluateFitness(moved) > s.EvaluateFitness(p) {
				particles[i] = moved
			}
			if score := s.EvaluateFitness(particles[i]); score > globalBestScore {
				globalBest, globalBestScore = particles[i], score
			}
		}
	}

	solution, _ := solutionutil.Dedup(s.snapshot, globalBest)
	return Result{
		Assignments:   solution,
		Fitness:       s.EvaluateFitness(solution),
		ExecutionTime: time.Since(start),
		AlgorithmTag:  s.tag,
		Status:        StatusSuccess,
		Parameters:    s.params,
	}, nil
}
