package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/defense-scheduler/internal/runstore"
)

// ScheduleResultRepository owns the persisted schedule rows derived
// from a completed run, fulfilling the rest of orchestrator.ResultStore
// alongside RunRepository.
type ScheduleResultRepository struct {
	db *sqlx.DB
}

// NewScheduleResultRepository constructs a schedule result repository.
func NewScheduleResultRepository(db *sqlx.DB) *ScheduleResultRepository {
	return &ScheduleResultRepository{db: db}
}

// ReplaceSchedule clears the existing schedule and inserts the
// deduplicated rows for runID inside one transaction, rolling back on
// any error (§4.5 step 13, §4.7: "clear-then-insert ... all-or-nothing").
func (r *ScheduleResultRepository) ReplaceSchedule(ctx context.Context, runID string, rows []runstore.ScheduleRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_assignments`); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	const insert = `
		INSERT INTO schedule_assignments (run_id, project_id, classroom_id, timeslot_id, is_makeup, instructor_ids)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insert,
			runID, row.ProjectID, row.ClassroomID, row.TimeslotID, row.IsMakeup, pq.Array(row.InstructorIDs),
		); err != nil {
			return fmt.Errorf("insert schedule row for project %d: %w", row.ProjectID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule tx: %w", err)
	}
	return nil
}

type scheduleRowDB struct {
	ID            int           `db:"id"`
	ProjectID     int           `db:"project_id"`
	ClassroomID   int           `db:"classroom_id"`
	TimeslotID    int           `db:"timeslot_id"`
	IsMakeup      bool          `db:"is_makeup"`
	InstructorIDs pq.Int64Array `db:"instructor_ids"`
	RunID         string        `db:"run_id"`
}

// ListSchedule returns persisted schedule rows, optionally filtered by
// is_makeup (§6 "Schedule listing").
func (r *ScheduleResultRepository) ListSchedule(ctx context.Context, isMakeup *bool) ([]runstore.ScheduleRow, error) {
	query := `SELECT id, project_id, classroom_id, timeslot_id, is_makeup, instructor_ids, run_id FROM schedule_assignments`
	args := []any{}
	if isMakeup != nil {
		query += ` WHERE is_makeup = $1`
		args = append(args, *isMakeup)
	}
	query += ` ORDER BY timeslot_id, classroom_id`

	var rows []scheduleRowDB
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}

	out := make([]runstore.ScheduleRow, 0, len(rows))
	for _, row := range rows {
		instructors := make([]int, 0, len(row.InstructorIDs))
		for _, id := range row.InstructorIDs {
			instructors = append(instructors, int(id))
		}
		out = append(out, runstore.ScheduleRow{
			ID:            row.ID,
			ProjectID:     row.ProjectID,
			ClassroomID:   row.ClassroomID,
			TimeslotID:    row.TimeslotID,
			IsMakeup:      row.IsMakeup,
			InstructorIDs: instructors,
			RunID:         row.RunID,
		})
	}
	return out, nil
}
