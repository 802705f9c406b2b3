package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// cuckooStrategy lays a freshly built "egg" (a full rebuild from the
// shared construction heuristic) each round and puts it in a randomly
// chosen nest when it beats that nest; then, with probability
// abandonRate, the worst nest is abandoned and rebuilt.
type cuckooStrategy struct {
	baseStrategy
	nests         int
	iterations    int
	abandonRate   float64
}

func newCuckoo() Strategy { return &cuckooStrategy{} }

func (s *cuckooStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("cuckoo", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.nests = paramInt(params, "nests", 12)
	s.iterations = paramInt(params, "iterations", 35)
	s.abandonRate = paramFloat(params, "abandon_rate", 0.25)
	return nil
}

func (s *cuckooStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	nests := make([][]domain.Assignment, s.nests)
	for i := range nests {
		nests[i] = s.BuildBaseSolution()
	}

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		egg := s.BuildBaseSolution()
		eggScore := s.EvaluateFitness(egg)
		target := s.rng.Intn(len(nests))
		if eggScore > s.EvaluateFitness(nests[target]) {
			nests[target] = egg
		}

		worstIdx, worstScore := worstOf(nests, s.EvaluateFitness)
		if s.rng.Float64() < s.abandonRate {
			nests[worstIdx] = s.BuildBaseSolution()
			_ = worstScore
		}
	}

	best, bestScore := nests[0], s.EvaluateFitness(nests[0])
	for _, n := range nests {
		if score := s.EvaluateFitness(n); score > bestScore {
			best, bestScore = n, score
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
