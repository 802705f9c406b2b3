package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/defense-scheduler/internal/runstore"
)

// RunRepository persists RunRecord rows and their derived schedule,
// fulfilling orchestrator.ResultStore.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository constructs a run repository.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun inserts the initial status=running row (§4.5 step 2).
func (r *RunRepository) CreateRun(ctx context.Context, run *runstore.RunRecord) error {
	const query = `
		INSERT INTO algorithm_runs (id, algorithm_tag, parameters, data, status, started_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		run.ID, run.AlgorithmTag, run.Parameters, run.Data, run.Status, run.StartedAt, run.UserID,
	); err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// UpdateRun writes the terminal (completed or failed) state back (§4.5
// step 12, step 15).
func (r *RunRepository) UpdateRun(ctx context.Context, run *runstore.RunRecord) error {
	const query = `
		UPDATE algorithm_runs
		SET status = $2, result = $3, error = $4, execution_time_seconds = $5,
		    completed_at = $6, fallback_used = $7, fallback_from = $8
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		run.ID, run.Status, run.Result, run.Error, run.ExecutionTimeSeconds,
		run.CompletedAt, run.FallbackUsed, run.FallbackFrom,
	); err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// FindByID retrieves a run by ID for the result-retrieval RPC (§6).
func (r *RunRepository) FindByID(ctx context.Context, id string) (*runstore.RunRecord, error) {
	const query = `
		SELECT id, algorithm_tag, parameters, data, status, result, error,
		       execution_time_seconds, started_at, completed_at, user_id, fallback_used, fallback_from
		FROM algorithm_runs WHERE id = $1`
	var run runstore.RunRecord
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, fmt.Errorf("find run %s: %w", id, err)
	}
	return &run, nil
}

