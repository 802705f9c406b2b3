package algorithm

import (
	"container/heap"
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// aStarNode is one frontier entry: a candidate solution with its
// g-cost (moves taken so far) and h-cost (100 minus the candidate's
// fitness), ordered by f = g + h so the open set always pops the
// most promising candidate next.
type aStarNode struct {
	solution []domain.Assignment
	g        int
	f        float64
}

type aStarFrontier []*aStarNode

func (q aStarFrontier) Len() int            { return len(q) }
func (q aStarFrontier) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q aStarFrontier) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *aStarFrontier) Push(x interface{}) { *q = append(*q, x.(*aStarNode)) }
func (q *aStarFrontier) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// aStarStrategy runs a bounded best-first search over the solution
// space: the open set is a min-heap ordered by f = g + h, expanding the
// most promising node with a local move until the expansion budget is
// spent or the frontier is empty; there is no separate goal test.
type aStarStrategy struct {
	baseStrategy
	maxExpansions int
}

func newAStar() Strategy { return &aStarStrategy{} }

func (s *aStarStrategy) Initialize(_ context.Context, snapshot *domain.Snapshot, params map[string]any) error {
	if err := s.initBase("a-star", fitness.CategorySearchDefault, snapshot, params); err != nil {
		return err
	}
	s.maxExpansions = paramInt(params, "max_expansions", 200)
	return nil
}

func (s *aStarStrategy) hCost(solution []domain.Assignment) float64 {
	return 100 - s.EvaluateFitness(solution)
}

func (s *aStarStrategy) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()

	initial := s.BuildBaseSolution()
	open := &aStarFrontier{{solution: initial, g: 0, f: s.hCost(initial)}}
	heap.Init(open)

	best, bestScore := initial, s.EvaluateFitness(initial)

	for expansions := 0; open.Len() > 0 && expansions < s.maxExpansions; expansions++ {
		select {
		case <-ctx.Done():
			expansions = s.maxExpansions
			continue
		default:
		}
		node := heap.Pop(open).(*aStarNode)
		if score := s.EvaluateFitness(node.solution); score > bestScore {
			best, bestScore = node.solution, score
		}
		successor := swapCells(node.solution, s.rng)
		heap.Push(open, &aStarNode{
			solution: successor,
			g:        node.g + 1,
			f:        float64(node.g+1) + s.hCost(successor),
		})
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
