// Package algorithm hosts the scheduling strategy plug-in contract, the
// tag registry, the shared construction heuristic every strategy builds
// on, and one file per registered algorithm tag.
package algorithm

import (
	"context"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
)

// Status values a Result may carry (§4.4).
const (
	StatusSuccess    = "success"
	StatusDegenerate = "degenerate"
	StatusError      = "error"
	StatusFailed     = "failed"
	StatusInfeasible = "infeasible"
)

// Strategy is the uniform contract every scheduling algorithm implements.
type Strategy interface {
	Initialize(ctx context.Context, snapshot *domain.Snapshot, params map[string]any) error
	Optimize(ctx context.Context) (Result, error)
	EvaluateFitness(solution []domain.Assignment) float64
	Category() fitness.AlgorithmCategory
}

// Result is the common output shape every strategy must produce,
// regardless of its internal search mechanics.
type Result struct {
	Assignments   []domain.Assignment
	Fitness       float64
	ExecutionTime time.Duration
	AlgorithmTag  string
	Status        string
	Parameters    map[string]any
	Stats         map[string]any
}

// statusFor derives the terminal status for a freshly built solution:
// empty output is degenerate, anything else is a success regardless of
// coverage (§4.4: "success (assignments non-empty, coverage may be < 100%)").
func statusFor(solution []domain.Assignment) string {
	if len(solution) == 0 {
		return StatusDegenerate
	}
	return StatusSuccess
}

// Degenerate reports the terminal states that trigger orchestrator
// fallback: empty assignments or an explicit failure status.
func (r Result) Degenerate() bool {
	if len(r.Assignments) == 0 {
		return true
	}
	switch r.Status {
	case StatusError, StatusFailed, StatusInfeasible:
		return true
	default:
		return false
	}
}
