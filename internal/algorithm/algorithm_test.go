package algorithm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

func newStrategySnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	coAdvisor := 21
	snap, err := domain.NewSnapshot(
		[]domain.Project{
			{ID: 1, Type: domain.ProjectThesis, ResponsibleID: 10, CoAdvisorID: &coAdvisor},
			{ID: 2, Type: domain.ProjectInterim, ResponsibleID: 11, AssistantIDs: []int{30}},
			{ID: 3, Type: domain.ProjectInterim, ResponsibleID: 10},
		},
		[]domain.Instructor{
			{ID: 10, Rank: domain.RankFaculty},
			{ID: 11, Rank: domain.RankFaculty},
			{ID: 21, Rank: domain.RankFaculty},
			{ID: 30, Rank: domain.RankAssistant},
		},
		[]domain.Classroom{
			{ID: 1, Capacity: 30, Active: true},
			{ID: 2, Capacity: 30, Active: true},
		},
		[]domain.Timeslot{
			{ID: 1, Start: base, End: base.Add(30 * time.Minute)},
			{ID: 2, Start: base.Add(30 * time.Minute), End: base.Add(time.Hour)},
			{ID: 3, Start: base.Add(time.Hour), End: base.Add(90 * time.Minute)},
			{ID: 4, Start: base.Add(90 * time.Minute), End: base.Add(2 * time.Hour)},
		},
	)
	require.NoError(t, err)
	return snap
}

func TestResultDegenerate(t *testing.T) {
	assert.True(t, Result{}.Degenerate())
	assert.True(t, Result{Assignments: []domain.Assignment{{}}, Status: StatusError}.Degenerate())
	assert.True(t, Result{Assignments: []domain.Assignment{{}}, Status: StatusFailed}.Degenerate())
	assert.True(t, Result{Assignments: []domain.Assignment{{}}, Status: StatusInfeasible}.Degenerate())
	assert.False(t, Result{Assignments: []domain.Assignment{{}}, Status: StatusSuccess}.Degenerate())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusDegenerate, statusFor(nil))
	assert.Equal(t, StatusSuccess, statusFor([]domain.Assignment{{}}))
}
