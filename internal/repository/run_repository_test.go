package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/runstore"
)

func newRunRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
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

func TestRunRepositoryCreateRun(t *testing.T) {
	db, mock, cleanup := newRunRepoMock(t)
	defer cleanup()
	repo := NewRunRepository(db)

	run := &runstore.RunRecord{
		ID:           "run-1",
		AlgorithmTag: "genetic",
		Parameters:   json.RawMessage(`{"seed":1}`),
		Data:         json.RawMessage(`{}`),
		Status:       runstore.StatusRunning,
		StartedAt:    time.Now(),
	}

	mock.ExpectExec("INSERT INTO algorithm_runs").
		WithArgs(run.ID, run.AlgorithmTag, run.Parameters, run.Data, run.Status, run.StartedAt, run.UserID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateRun(context.Background(), run)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepositoryUpdateRun(t *testing.T) {
	db, mock, cleanup := newRunRepoMock(t)
	defer cleanup()
	repo := NewRunRepository(db)

	completedAt := time.Now()
	run := &runstore.RunRecord{
		ID:                   "run-1",
		Status:               runstore.StatusCompleted,
		Result:               json.RawMessage(`{"score":1}`),
		ExecutionTimeSeconds: 1.5,
		CompletedAt:          &completedAt,
	}

	mock.ExpectExec("UPDATE algorithm_runs").
		WithArgs(run.ID, run.Status, run.Result, run.Error, run.ExecutionTimeSeconds,
			run.CompletedAt, run.FallbackUsed, run.FallbackFrom).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRun(context.Background(), run)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRunRepoMock(t)
	defer cleanup()
	repo := NewRunRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "algorithm_tag", "parameters", "data", "status", "result", "error",
		"execution_time_seconds", "started_at", "completed_at", "user_id", "fallback_used", "fallback_from",
	}).AddRow("run-1", "greedy", []byte(`{}`), []byte(`{}`), "completed", []byte(`{}`), nil,
		2.0, time.Now(), nil, nil, false, nil)

	mock.ExpectQuery("SELECT id, algorithm_tag, parameters, data, status, result, error").
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := repo.FindByID(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "greedy", run.AlgorithmTag)
	assert.Equal(t, runstore.StatusCompleted, run.Status)
}

func TestRunRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRunRepoMock(t)
	defer cleanup()
	repo := NewRunRepository(db)

	mock.ExpectQuery("SELECT id, algorithm_tag, parameters, data, status, result, error").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
}
