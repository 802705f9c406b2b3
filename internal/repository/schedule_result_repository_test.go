package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/runstore"
)

func newScheduleRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
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

func TestScheduleResultRepositoryReplaceSchedule(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleResultRepository(db)

	rows := []runstore.ScheduleRow{
		{ProjectID: 1, ClassroomID: 1, TimeslotID: 1, IsMakeup: false, InstructorIDs: []int{10, 11}},
		{ProjectID: 2, ClassroomID: 1, TimeslotID: 2, IsMakeup: true, InstructorIDs: []int{10}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_assignments").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schedule_assignments").
		WithArgs("run-1", 1, 1, 1, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO schedule_assignments").
		WithArgs("run-1", 2, 1, 2, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.ReplaceSchedule(context.Background(), "run-1", rows)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleResultRepositoryReplaceScheduleRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleResultRepository(db)

	rows := []runstore.ScheduleRow{{ProjectID: 1, ClassroomID: 1, TimeslotID: 1}}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_assignments").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schedule_assignments").
		WithArgs("run-1", 1, 1, 1, false, sqlmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceSchedule(context.Background(), "run-1", rows)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleResultRepositoryListSchedule(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleResultRepository(db)

	mock.ExpectQuery("SELECT id, project_id, classroom_id, timeslot_id, is_makeup, instructor_ids, run_id FROM schedule_assignments ORDER BY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "classroom_id", "timeslot_id", "is_makeup", "instructor_ids", "run_id"}).
			AddRow(1, 1, 1, 1, false, "{10,11}", "run-1"))

	out, err := repo.ListSchedule(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []int{10, 11}, out[0].InstructorIDs)
}

func TestScheduleResultRepositoryListScheduleFiltered(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleResultRepository(db)

	isMakeup := true
	mock.ExpectQuery("SELECT id, project_id, classroom_id, timeslot_id, is_makeup, instructor_ids, run_id FROM schedule_assignments WHERE is_makeup = \\$1 ORDER BY").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "classroom_id", "timeslot_id", "is_makeup", "instructor_ids", "run_id"}).
			AddRow(2, 2, 1, 2, true, "{10}", "run-1"))

	out, err := repo.ListSchedule(context.Background(), &isMakeup)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsMakeup)
}
