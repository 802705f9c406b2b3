// Package runstore defines the persisted shape of one algorithm run
// (§3 Run, §6 "Persisted run-record schema") shared between the
// orchestrator and its Postgres-backed repository implementation.
package runstore

import (
	"encoding/json"
	"time"
)

// Run lifecycle states (§3).
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunRecord is the row persisted for every RunAlgorithm invocation.
// Parameters/Data/Result are stored as raw JSON so the orchestrator can
// hand them to the store already sanitized (±Inf/NaN replaced with null)
// without the store needing to know the algorithm-result shape.
type RunRecord struct {
	ID                   string          `db:"id" json:"id"`
	AlgorithmTag         string          `db:"algorithm_tag" json:"algorithm_tag"`
	Parameters           json.RawMessage `db:"parameters" json:"parameters"`
	Data                 json.RawMessage `db:"data" json:"data"`
	Status               string          `db:"status" json:"status"`
	Result               json.RawMessage `db:"result" json:"result,omitempty"`
	Error                *string         `db:"error" json:"error,omitempty"`
	ExecutionTimeSeconds float64         `db:"execution_time_seconds" json:"execution_time_seconds"`
	StartedAt            time.Time       `db:"started_at" json:"started_at"`
	CompletedAt          *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	UserID               *string         `db:"user_id" json:"user_id,omitempty"`
	FallbackUsed         bool            `db:"fallback_used" json:"fallback_used,omitempty"`
	FallbackFrom         *string         `db:"fallback_from" json:"fallback_from,omitempty"`
}

// ScheduleRow is one persisted assignment (§6 "Persisted schedule row schema").
type ScheduleRow struct {
	ID            int    `db:"id" json:"id"`
	ProjectID     int    `db:"project_id" json:"project_id"`
	ClassroomID   int    `db:"classroom_id" json:"classroom_id"`
	TimeslotID    int    `db:"timeslot_id" json:"timeslot_id"`
	IsMakeup      bool   `db:"is_makeup" json:"is_makeup"`
	InstructorIDs []int  `db:"-" json:"instructors"`
	RunID         string `db:"run_id" json:"run_id,omitempty"`
}
