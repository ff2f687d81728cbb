package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffsasaki/antipatterns/models"
)

var runColumns = []string{"run_id", "slug", "status", "output", "error", "requested_at", "completed_at"}

func newMockStore(t *testing.T) (*RunStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRunStore(db), mock
}

func TestMigrate(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS runs").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	s, mock := newMockStore(t)
	requested := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO runs").
		WithArgs("run-1", "god-object", models.RunPending, requested).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Create(context.Background(), models.Run{ID: "run-1", Slug: "god-object", Status: models.RunPending, RequestedAt: requested})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	s, mock := newMockStore(t)
	requested := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	completed := requested.Add(time.Second)
	rows := sqlmock.NewRows(runColumns).
		AddRow("run-1", "dead-code", models.RunSucceeded, "output", "", requested, completed)
	mock.ExpectQuery("^SELECT (.+) FROM runs WHERE run_id").WithArgs("run-1").WillReturnRows(rows)

	run, err := s.Get(context.Background(), "run-1")
	require.NoError(t, err)

	expected := models.Run{
		ID:          "run-1",
		Slug:        "dead-code",
		Status:      models.RunSucceeded,
		Output:      "output",
		RequestedAt: requested,
		CompletedAt: &completed,
	}
	assert.Equal(t, expected, run)
}

func TestGet_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("^SELECT (.+) FROM runs WHERE run_id").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestList(t *testing.T) {
	s, mock := newMockStore(t)
	requested := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(runColumns).
		AddRow("run-2", "lava-flow", models.RunPending, "", "", requested.Add(time.Minute), nil).
		AddRow("run-1", "dead-code", models.RunFailed, "", "boom", requested, requested)
	mock.ExpectQuery("^SELECT (.+) FROM runs ORDER BY requested_at DESC").WillReturnRows(rows)

	runs, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Nil(t, runs[0].CompletedAt)
	assert.Equal(t, "boom", runs[1].Error)
	assert.NotNil(t, runs[1].CompletedAt)
}

func TestList_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("^SELECT (.+) FROM runs").WillReturnError(errors.New("connection refused"))

	_, err := s.List(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestApplyResult(t *testing.T) {
	s, mock := newMockStore(t)
	completed := time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC)
	mock.ExpectExec("UPDATE runs SET status").
		WithArgs(models.RunSucceeded, "out", "", completed, "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.ApplyResult(context.Background(), models.RunResult{RunID: "run-1", Status: models.RunSucceeded, Output: "out"}, completed)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyResult_UnknownRun(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("UPDATE runs SET status").WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.ApplyResult(context.Background(), models.RunResult{RunID: "ghost", Status: models.RunFailed}, time.Now())
	assert.ErrorIs(t, err, ErrRunNotFound)
}
