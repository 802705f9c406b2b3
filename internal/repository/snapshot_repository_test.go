package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

func newSnapshotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestSnapshotRepositoryLoadSnapshot(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	start := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	mock.ExpectQuery("SELECT id, type, responsible_id, co_advisor_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "responsible_id", "co_advisor_id", "assistant_ids"}).
			AddRow(1, "thesis", 10, nil, pq.Int64Array{11, 12}))

	mock.ExpectQuery("SELECT id, rank FROM instructors").
		WillReturnRows(sqlmock.NewRows([]string{"id", "rank"}).
			AddRow(10, "faculty").
			AddRow(11, "assistant").
			AddRow(12, "assistant"))

	mock.ExpectQuery("SELECT id, capacity, active FROM classrooms").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "active"}).
			AddRow(1, 30, true))

	mock.ExpectQuery("SELECT id, start_time, end_time, is_morning FROM timeslots").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "is_morning"}).
			AddRow(1, start, end, true))

	snap, err := repo.LoadSnapshot(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, snap)

	require.Len(t, snap.Projects, 1)
	assert.Equal(t, domain.ProjectType("thesis"), snap.Projects[0].Type)
	assert.Equal(t, []int{11, 12}, snap.Projects[0].AssistantIDs)
	assert.Nil(t, snap.Projects[0].CoAdvisorID)

	require.Len(t, snap.Instructors, 3)
	assert.Equal(t, domain.RankFaculty, snap.Instructors[0].Rank)

	require.Len(t, snap.Classrooms, 1)
	assert.True(t, snap.Classrooms[0].Active)

	require.Len(t, snap.Timeslots, 1)
	assert.True(t, snap.Timeslots[0].IsMorning)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryLoadSnapshotRejectsUnrecognizedProjectType(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	mock.ExpectQuery("SELECT id, type, responsible_id, co_advisor_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "responsible_id", "co_advisor_id", "assistant_ids"}).
			AddRow(1, "capstone", 10, nil, pq.Int64Array{}))

	_, err := repo.LoadSnapshot(context.Background(), 5)
	require.Error(t, err)
}

func TestSnapshotRepositoryLoadSnapshotQueryError(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	mock.ExpectQuery("SELECT id, type, responsible_id, co_advisor_id").
		WillReturnError(assert.AnError)

	_, err := repo.LoadSnapshot(context.Background(), 5)
	require.Error(t, err)
}
