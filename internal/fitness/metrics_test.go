package fitness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

func newScoringSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	snap, err := domain.NewSnapshot(
		[]domain.Project{
			{ID: 1, Type: domain.ProjectInterim, ResponsibleID: 10},
			{ID: 2, Type: domain.ProjectThesis, ResponsibleID: 11},
		},
		[]domain.Instructor{
			{ID: 10, Rank: domain.RankFaculty},
			{ID: 11, Rank: domain.RankFaculty},
			{ID: 12, Rank: domain.RankAssistant},
		},
		[]domain.Classroom{{ID: 1, Capacity: 10, Active: true}},
		[]domain.Timeslot{
			{ID: 1, Start: base, End: base.Add(30 * time.Minute)},
			{ID: 2, Start: base.Add(30 * time.Minute), End: base.Add(time.Hour)},
		},
	)
	require.NoError(t, err)
	return snap
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights(CategorySearchDefault).Sum(), 1e-9)
	assert.InDelta(t, 1.0, DefaultWeights(CategoryEvolutionarySwarmLocal).Sum(), 1e-9)
	assert.InDelta(t, 1.0, DefaultWeights(CategoryMathProgConstraint).Sum(), 1e-9)
}

func TestMetricsScoreFullCoverageCompliant(t *testing.T) {
	snap := newScoringSnapshot(t)
	solution := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 1, TimeslotID: 1, InstructorIDs: []int{10, 12}},
		{ProjectID: 2, ClassroomID: 1, TimeslotID: 2, InstructorIDs: []int{11, 12}},
	}

	result := Metrics{}.Score(snap, solution, DefaultWeights(CategorySearchDefault))
	assert.Equal(t, float64(100), result.Axes["coverage"])
	assert.Equal(t, float64(100), result.Axes["duplicate_penalty"])
	assert.GreaterOrEqual(t, result.Total, float64(0))
	assert.LessOrEqual(t, result.Total, float64(100))
}

func TestMetricsScoreEmptySolutionIsZeroCoverage(t *testing.T) {
	snap := newScoringSnapshot(t)
	result := Metrics{}.Score(snap, nil, DefaultWeights(CategorySearchDefault))
	assert.Equal(t, float64(0), result.Axes["coverage"])
	assert.Equal(t, float64(0), result.Axes["slot_reward"])
}

func TestMetricsScoreDuplicateProjectPenalized(t *testing.T) {
	snap := newScoringSnapshot(t)
	solution := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 1, TimeslotID: 1, InstructorIDs: []int{10}},
		{ProjectID: 1, ClassroomID: 1, TimeslotID: 2, InstructorIDs: []int{10}},
	}
	result := Metrics{}.Score(snap, solution, DefaultWeights(CategorySearchDefault))
	assert.Equal(t, float64(0), result.Axes["duplicate_penalty"])
}

func TestMetricsScoreClampStaysInBounds(t *testing.T) {
	r := Result{Total: 150}
	r.Clamp()
	assert.Equal(t, float64(100), r.Total)

	r = Result{Total: -5}
	r.Clamp()
	assert.Equal(t, float64(0), r.Total)
}

func TestRoleComplianceAxisRequiresResponsibleFirstAndMinJury(t *testing.T) {
	snap := newScoringSnapshot(t)
	// thesis project needs 2 jurors and responsible must lead the list.
	noncompliant := []domain.Assignment{
		{ProjectID: 2, ClassroomID: 1, TimeslotID: 2, InstructorIDs: []int{12}},
	}
	result := Metrics{}.Score(snap, noncompliant, DefaultWeights(CategorySearchDefault))
	assert.Equal(t, float64(0), result.Axes["role_compliance"])
}
