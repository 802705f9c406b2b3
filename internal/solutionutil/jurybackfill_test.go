package solutionutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// newJuryBackfillSnapshot mirrors spec scenario 2: two thesis projects
// sharing one responsible instructor, so reciprocal adjacency pairing
// never fires between them (same responsibleID on both sides).
func newJuryBackfillSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	snap, err := domain.NewSnapshot(
		[]domain.Project{
			{ID: 1, Type: domain.ProjectThesis, ResponsibleID: 10},
			{ID: 2, Type: domain.ProjectThesis, ResponsibleID: 10},
		},
		[]domain.Instructor{
			{ID: 10, Rank: domain.RankFaculty},
			{ID: 11, Rank: domain.RankFaculty},
			{ID: 12, Rank: domain.RankAssistant},
		},
		[]domain.Classroom{{ID: 100, Capacity: 30, Active: true}},
		[]domain.Timeslot{
			{ID: 200, Start: base},
			{ID: 201, Start: base.Add(30 * time.Minute)},
			{ID: 202, Start: base.Add(60 * time.Minute)},
		},
	)
	require.NoError(t, err)
	return snap
}

func TestBackfillThesisJuryAddsFacultyWhenUnderStaffed(t *testing.T) {
	snap := newJuryBackfillSnapshot(t)
	solution := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 100, TimeslotID: 201, InstructorIDs: []int{10}},
	}

	result, added := BackfillThesisJury(snap, solution)
	require.Equal(t, 2, added)

	for _, a := range result {
		require.Len(t, a.InstructorIDs, 2)
		assert.Equal(t, 10, a.InstructorIDs[0], "responsible instructor stays first")
		assert.Equal(t, 11, a.InstructorIDs[1], "faculty juror 11 preferred over assistant 12")
	}
}

func TestBackfillThesisJuryLeavesCompliantAssignmentsAlone(t *testing.T) {
	snap := newJuryBackfillSnapshot(t)
	solution := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10, 11}},
	}

	result, added := BackfillThesisJury(snap, solution)
	assert.Equal(t, 0, added)
	assert.Equal(t, solution, result)
}

func TestBackfillThesisJuryIgnoresUnresolvableProject(t *testing.T) {
	snap := newJuryBackfillSnapshot(t)
	solution := []domain.Assignment{
		{ProjectID: 3, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
	}
	// Project 3 doesn't exist in the snapshot; BackfillThesisJury must not
	// panic on an unresolvable project and must leave it untouched.
	result, added := BackfillThesisJury(snap, solution)
	assert.Equal(t, 0, added)
	assert.Equal(t, solution, result)
}

func TestBackfillThesisJurySkipsBusyCandidates(t *testing.T) {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	snap, err := domain.NewSnapshot(
		[]domain.Project{
			{ID: 1, Type: domain.ProjectThesis, ResponsibleID: 10},
			{ID: 2, Type: domain.ProjectInterim, ResponsibleID: 11},
		},
		[]domain.Instructor{
			{ID: 10, Rank: domain.RankFaculty},
			{ID: 11, Rank: domain.RankFaculty},
			{ID: 12, Rank: domain.RankAssistant},
		},
		[]domain.Classroom{{ID: 100, Active: true}, {ID: 101, Active: true}},
		[]domain.Timeslot{{ID: 200, Start: base}},
	)
	require.NoError(t, err)

	solution := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		// Instructor 11 is already booked elsewhere at the same timeslot,
		// so the backfill must fall through to assistant 12.
		{ProjectID: 2, ClassroomID: 101, TimeslotID: 200, InstructorIDs: []int{11}},
	}

	result, added := BackfillThesisJury(snap, solution)
	require.Equal(t, 1, added)
	assert.Equal(t, []int{10, 12}, result[0].InstructorIDs)
	assert.Equal(t, []int{11}, result[1].InstructorIDs)
}
