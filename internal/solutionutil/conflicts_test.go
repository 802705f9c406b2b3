package solutionutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

func TestDetectConflictsEmptyOnCleanSolution(t *testing.T) {
	report := DetectConflicts(nil, nil)
	assert.True(t, report.Empty())
}

func TestDetectConflictsFindsDuplicateCellAndInstructor(t *testing.T) {
	solution := conflictFixture()
	report := DetectConflicts(nil, solution)

	require.False(t, report.Empty())
	assert.Contains(t, report.Duplicates, 1)

	require.Len(t, report.CellCollisions, 1)
	assert.Equal(t, 1, report.CellCollisions[0].ClassroomID)
	assert.Equal(t, 1, report.CellCollisions[0].TimeslotID)
	assert.ElementsMatch(t, []int{1, 2, 3}, report.CellCollisions[0].ProjectIDs)

	require.Len(t, report.InstructorCollisions, 1)
	assert.Equal(t, 10, report.InstructorCollisions[0].InstructorID)
}

func conflictFixture() []domain.Assignment {
	return []domain.Assignment{
		{ProjectID: 1, ClassroomID: 1, TimeslotID: 1, InstructorIDs: []int{10}},
		{ProjectID: 1, ClassroomID: 2, TimeslotID: 2, InstructorIDs: []int{11}},
		{ProjectID: 2, ClassroomID: 1, TimeslotID: 1, InstructorIDs: []int{10}},
		{ProjectID: 3, ClassroomID: 1, TimeslotID: 1, InstructorIDs: []int{12}},
	}
}
