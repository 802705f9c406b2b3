package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProjectType(t *testing.T) {
	cases := map[string]ProjectType{
		"thesis":  ProjectThesis,
		"Final":   ProjectThesis,
		"BITIRME": ProjectThesis,
		"interim": ProjectInterim,
		"ARA":     ProjectInterim,
	}
	for raw, want := range cases {
		got, err := NormalizeProjectType(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Equal(t, want, got, "raw=%q", raw)
	}
}

func TestNormalizeProjectTypeRejectsUnrecognizedValues(t *testing.T) {
	for _, raw := range []string{"", "capstone", "draft"} {
		_, err := NormalizeProjectType(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestIsLateStart(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsLateStart(base.Add(16*time.Hour+29*time.Minute)))
	assert.True(t, IsLateStart(base.Add(16*time.Hour+30*time.Minute)))
	assert.True(t, IsLateStart(base.Add(17*time.Hour)))
}

func newTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	coAdvisor := 20
	snap, err := NewSnapshot(
		[]Project{
			{ID: 1, Type: ProjectThesis, ResponsibleID: 10, CoAdvisorID: &coAdvisor, AssistantIDs: []int{30}},
			{ID: 2, Type: ProjectInterim, ResponsibleID: 11},
		},
		[]Instructor{
			{ID: 10, Rank: RankFaculty},
			{ID: 11, Rank: RankAssistant},
			{ID: 20, Rank: RankFaculty},
			{ID: 30, Rank: RankAssistant},
		},
		[]Classroom{
			{ID: 1, Capacity: 30, Active: true},
			{ID: 2, Capacity: 10, Active: false},
		},
		[]Timeslot{
			{ID: 2, Start: base.Add(30 * time.Minute), End: base.Add(time.Hour), IsMorning: true},
			{ID: 1, Start: base, End: base.Add(30 * time.Minute), IsMorning: true},
		},
	)
	require.NoError(t, err)
	return snap
}

func TestNewSnapshotValidation(t *testing.T) {
	_, err := NewSnapshot(nil, []Instructor{{ID: 1}}, []Classroom{{ID: 1, Active: true}}, []Timeslot{{ID: 1}})
	assert.Error(t, err)

	_, err = NewSnapshot([]Project{{ID: 1}}, nil, []Classroom{{ID: 1, Active: true}}, []Timeslot{{ID: 1}})
	assert.Error(t, err)

	_, err = NewSnapshot([]Project{{ID: 1}}, []Instructor{{ID: 1}}, nil, []Timeslot{{ID: 1}})
	assert.Error(t, err)

	_, err = NewSnapshot([]Project{{ID: 1}}, []Instructor{{ID: 1}}, []Classroom{{ID: 1, Active: true}}, nil)
	assert.Error(t, err)
}

func TestSnapshotSortedTimeslots(t *testing.T) {
	snap := newTestSnapshot(t)
	slots := snap.SortedTimeslots()
	require.Len(t, slots, 2)
	assert.Equal(t, 1, slots[0].ID)
	assert.Equal(t, 2, slots[1].ID)
	assert.Equal(t, 0, snap.SlotIndex(1))
	assert.Equal(t, 1, snap.SlotIndex(2))
	assert.Equal(t, -1, snap.SlotIndex(999))
}

func TestSnapshotClassroomIDsOnlyActive(t *testing.T) {
	snap := newTestSnapshot(t)
	assert.Equal(t, []int{1}, snap.ClassroomIDs())
}

func TestSnapshotProjectsByResponsible(t *testing.T) {
	snap := newTestSnapshot(t)
	grouped := snap.ProjectsByResponsible()
	require.Len(t, grouped[10], 1)
	require.Len(t, grouped[11], 1)
	assert.Equal(t, 1, grouped[10][0].ID)
}

func TestSnapshotLookups(t *testing.T) {
	snap := newTestSnapshot(t)

	p, ok := snap.Project(1)
	require.True(t, ok)
	assert.Equal(t, ProjectThesis, p.Type)
	_, ok = snap.Project(999)
	assert.False(t, ok)

	i, ok := snap.Instructor(10)
	require.True(t, ok)
	assert.Equal(t, RankFaculty, i.Rank)

	ts, ok := snap.Timeslot(1)
	require.True(t, ok)
	assert.True(t, ts.IsMorning)

	assert.False(t, snap.IsLate(1))
	assert.False(t, snap.IsLate(999))
}

func TestSnapshotContentHashStableAndSensitive(t *testing.T) {
	snap1 := newTestSnapshot(t)
	snap2 := newTestSnapshot(t)
	assert.Equal(t, snap1.ContentHash(), snap2.ContentHash())

	snap2.Extras["note"] = "changed"
	assert.NotEqual(t, snap1.ContentHash(), snap2.ContentHash())
}
