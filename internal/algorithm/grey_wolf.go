package algorithm

import (
	"context"
	"sort"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// greyWolfStrategy tracks the three fittest wolves (alpha/beta/delta) in
// the pack; each round every wolf is offered a swap move applied to one
// randomly picked leader's layout and takes it when it beats the wolf's
// own. Leader layouts are not blended.
type greyWolfStrategy struct {
	baseStrategy
	packSize   int
	iterations int
}

func newGreyWolf() Strategy { return &greyWolfStrategy{} }

func (s *greyWolfStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("grey-wolf", fitness.CategoryEvolutionarySwarmLocal, snapshot, params); err != nil {
		return err
	}
	s.packSize = paramInt(params, "pack_size", 12)
	s.iterations = paramInt(params, "iterations", 35)
	return nil
}

func (s *greyWolfStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	pack := make([][]domain.Assignment, s.packSize)
	for i := range pack {
		pack[i] = s.BuildBaseSolution()
	}

	for iter := 0; iter < s.iterations; iter++ {
		select {
		case <-ctx.Done():
			iter = s.iterations
			continue
		default:
		}
		leaders := leadersOf(pack, s.EvaluateFitness, 3)
		for i := range pack {
			leader := leaders[s.rng.Intn(len(leaders))]
			candidate := swapCells(leader, s.rng)
			if s.EvaluateFitness(candidate) > s.EvaluateFitness(pack[i]) {
				pack[i] = candidate
			}
		}
	}

	leaders := leadersOf(pack, s.EvaluateFitness, 1)
	best := leaders[0]

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

func leadersOf(pack [][]domain.Assignment, score func([]domain.Assignment) float64, n int) [][]domain.Assignment {
	order := make([]int, len(pack))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return score(pack[order[i]]) > score(pack[order[j]]) })
	if n > len(order) {
		n = len(order)
	}
	out := make([][]domain.Assignment, n)
	for i := 0; i < n; i++ {
		out[i] = pack[order[i]]
	}
	return out
}
