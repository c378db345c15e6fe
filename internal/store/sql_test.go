package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
)

func newMockPostgresStore(t *testing.T) (*sqlStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &sqlStore{db: db, rebind: rebindDollar, isDuplicate: postgresIsDuplicate}, mock
}

func TestRebindDollar(t *testing.T) {
	assert.Equal(t, "SELECT 1", rebindDollar("SELECT 1"))
	assert.Equal(t,
		"INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		rebindDollar("INSERT INTO t (a, b, c) VALUES (?, ?, ?)"))
}

func TestCreateJournalMapsUniqueViolation(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO shared_journals").
		WillReturnError(&pq.Error{Code: "23505"})

	err := s.CreateJournal(context.Background(), testJournal("ABCD1234"))
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJournalPassesThroughOtherErrors(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO shared_journals").
		WillReturnError(&pq.Error{Code: "57P01"}) // admin_shutdown

	err := s.CreateJournal(context.Background(), testJournal("ABCD1234"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrConflict)
}

func TestGetJournalNotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT share_key, title").
		WithArgs("NOPE0000").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetJournal(context.Background(), "NOPE0000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetJournalScansNullableCreator(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"share_key", "title", "created_at", "updated_at",
		"created_by_id", "created_by_username", "editable_by_anyone",
	}).AddRow("ABCD1234", "Trip", now, now, nil, nil, false)

	mock.ExpectQuery("SELECT share_key, title").
		WithArgs("ABCD1234").
		WillReturnRows(rows)

	j, err := s.GetJournal(context.Background(), "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "Trip", j.Title)
	assert.Nil(t, j.CreatedBy.ID)
	assert.Nil(t, j.CreatedBy.Username)
	assert.False(t, j.EditableByAnyone)
}

func TestDeleteJournalRollsBackWhenMissing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM journal_entries").
		WithArgs("NOPE0000").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM shared_journals").
		WithArgs("NOPE0000").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.DeleteJournal(context.Background(), "NOPE0000")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteJournalCommitsCascade(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM journal_entries").
		WithArgs("ABCD1234").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM shared_journals").
		WithArgs("ABCD1234").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.DeleteJournal(context.Background(), "ABCD1234"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEntryNotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec("UPDATE journal_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateEntry(context.Background(), testEntry("ghost", "ABCD1234", "2024-01-01"))
	assert.ErrorIs(t, err, models.ErrNotFound)
}
