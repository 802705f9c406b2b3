package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// SnapshotRepository loads the read-only scheduling universe an
// orchestrator run operates on, fulfilling orchestrator.DataSource.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository constructs a snapshot repository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

type projectRow struct {
	ID            int           `db:"id"`
	Type          string        `db:"type"`
	ResponsibleID int           `db:"responsible_id"`
	CoAdvisorID   *int          `db:"co_advisor_id"`
	AssistantIDs  pq.Int64Array `db:"assistant_ids"`
}

type instructorRow struct {
	ID   int    `db:"id"`
	Rank string `db:"rank"`
}

type classroomRow struct {
	ID       int  `db:"id"`
	Capacity int  `db:"capacity"`
	Active   bool `db:"active"`
}

type timeslotRow struct {
	ID        int       `db:"id"`
	Start     time.Time `db:"start_time"`
	End       time.Time `db:"end_time"`
	IsMorning bool      `db:"is_morning"`
}

// LoadSnapshot loads every active classroom up to classroomCount and
// every project/instructor/timeslot, and assembles the immutable
// domain.Snapshot a strategy runs against (§4.5 step 4).
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, classroomCount int) (*domain.Snapshot, error) {
	var projectRows []projectRow
	if err := r.db.SelectContext(ctx, &projectRows, `
		SELECT id, type, responsible_id, co_advisor_id, COALESCE(assistant_ids, '{}') AS assistant_ids
		FROM projects
		ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	var instructorRows []instructorRow
	if err := r.db.SelectContext(ctx, &instructorRows, `SELECT id, rank FROM instructors ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load instructors: %w", err)
	}

	var classroomRows []classroomRow
	if err := r.db.SelectContext(ctx, &classroomRows, `
		SELECT id, capacity, active FROM classrooms
		WHERE active = true
		ORDER BY id
		LIMIT $1`, classroomCount); err != nil {
		return nil, fmt.Errorf("load classrooms: %w", err)
	}

	var timeslotRows []timeslotRow
	if err := r.db.SelectContext(ctx, &timeslotRows, `
		SELECT id, start_time, end_time, is_morning FROM timeslots ORDER BY start_time`); err != nil {
		return nil, fmt.Errorf("load timeslots: %w", err)
	}

	projects := make([]domain.Project, 0, len(projectRows))
	for _, p := range projectRows {
		assistants := make([]int, 0, len(p.AssistantIDs))
		for _, id := range p.AssistantIDs {
			assistants = append(assistants, int(id))
		}
		projectType, err := domain.NormalizeProjectType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", p.ID, err)
		}
		projects = append(projects, domain.Project{
			ID:            p.ID,
			Type:          projectType,
			ResponsibleID: p.ResponsibleID,
			CoAdvisorID:   p.CoAdvisorID,
			AssistantIDs:  assistants,
		})
	}

	instructors := make([]domain.Instructor, 0, len(instructorRows))
	for _, i := range instructorRows {
		rank := domain.RankAssistant
		if i.Rank == string(domain.RankFaculty) {
			rank = domain.RankFaculty
		}
		instructors = append(instructors, domain.Instructor{ID: i.ID, Rank: rank})
	}

	classrooms := make([]domain.Classroom, 0, len(classroomRows))
	for _, c := range classroomRows {
		classrooms = append(classrooms, domain.Classroom{ID: c.ID, Capacity: c.Capacity, Active: c.Active})
	}

	timeslots := make([]domain.Timeslot, 0, len(timeslotRows))
	for _, t := range timeslotRows {
		timeslots = append(timeslots, domain.Timeslot{ID: t.ID, Start: t.Start, End: t.End, IsMorning: t.IsMorning})
	}

	return domain.NewSnapshot(projects, instructors, classrooms, timeslots)
}
