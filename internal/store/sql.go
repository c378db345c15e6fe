package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
)

// sqlStore implements Store over database/sql. The SQLite and Postgres
// backends share it and differ only in placeholder style and in how the
// driver reports a unique-constraint violation.
type sqlStore struct {
	db          *sql.DB
	rebind      func(string) string
	isDuplicate func(error) bool
}

var sqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS shared_journals (
		share_key TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		created_by_id TEXT,
		created_by_username TEXT,
		editable_by_anyone BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		share_key TEXT NOT NULL REFERENCES shared_journals (share_key),
		content TEXT NOT NULL,
		date TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		created_by_id TEXT,
		created_by_username TEXT,
		last_edited_by_id TEXT,
		last_edited_by_username TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_share_key ON journal_entries (share_key)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_date ON journal_entries (date)`,
}

func initSQLSchema(db *sql.DB) error {
	for _, query := range sqlSchema {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// rebindDollar rewrites ? placeholders to $1..$n for Postgres.
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (s *sqlStore) CreateJournal(ctx context.Context, j *models.Journal) error {
	query := s.rebind(`INSERT INTO shared_journals
		(share_key, title, created_at, updated_at, created_by_id, created_by_username, editable_by_anyone)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		j.ShareKey, j.Title, j.CreatedAt, j.UpdatedAt,
		j.CreatedBy.ID, j.CreatedBy.Username, j.EditableByAnyone)
	if err != nil {
		if s.isDuplicate(err) {
			return models.ErrConflict
		}
		return err
	}
	return nil
}

func (s *sqlStore) GetJournal(ctx context.Context, shareKey string) (*models.Journal, error) {
	query := s.rebind(`SELECT share_key, title, created_at, updated_at,
		created_by_id, created_by_username, editable_by_anyone
		FROM shared_journals WHERE share_key = ?`)

	var (
		j                 models.Journal
		createdByID       sql.NullString
		createdByUsername sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, shareKey).Scan(
		&j.ShareKey, &j.Title, &j.CreatedAt, &j.UpdatedAt,
		&createdByID, &createdByUsername, &j.EditableByAnyone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	j.CreatedBy = models.Identity{ID: nullToPtr(createdByID), Username: nullToPtr(createdByUsername)}
	return &j, nil
}

func (s *sqlStore) ListJournals(ctx context.Context) ([]models.JournalSummary, error) {
	query := `SELECT share_key, title, created_at, updated_at
		FROM shared_journals ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	journals := []models.JournalSummary{}
	for rows.Next() {
		var j models.JournalSummary
		if err := rows.Scan(&j.ShareKey, &j.Title, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

func (s *sqlStore) TouchJournal(ctx context.Context, shareKey string, at time.Time) error {
	query := s.rebind(`UPDATE shared_journals SET updated_at = ? WHERE share_key = ?`)
	res, err := s.db.ExecContext(ctx, query, at, shareKey)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *sqlStore) SetJournalPermissions(ctx context.Context, shareKey string, editableByAnyone bool, at time.Time) error {
	query := s.rebind(`UPDATE shared_journals SET editable_by_anyone = ?, updated_at = ? WHERE share_key = ?`)
	res, err := s.db.ExecContext(ctx, query, editableByAnyone, at, shareKey)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *sqlStore) DeleteJournal(ctx context.Context, shareKey string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM journal_entries WHERE share_key = ?`), shareKey); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM shared_journals WHERE share_key = ?`), shareKey)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqlStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	query := s.rebind(`SELECT id, share_key, content, date, updated_at,
		created_by_id, created_by_username, last_edited_by_id, last_edited_by_username
		FROM journal_entries WHERE id = ?`)

	row := s.db.QueryRowContext(ctx, query, id)
	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *sqlStore) InsertEntry(ctx context.Context, e *models.Entry) error {
	query := s.rebind(`INSERT INTO journal_entries
		(id, share_key, content, date, updated_at,
		 created_by_id, created_by_username, last_edited_by_id, last_edited_by_username)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.ShareKey, e.Content, e.Date, e.UpdatedAt,
		e.CreatedBy.ID, e.CreatedBy.Username,
		e.LastEditedBy.ID, e.LastEditedBy.Username)
	if err != nil && s.isDuplicate(err) {
		return models.ErrConflict
	}
	return err
}

func (s *sqlStore) UpdateEntry(ctx context.Context, e *models.Entry) error {
	query := s.rebind(`UPDATE journal_entries
		SET content = ?, date = ?, updated_at = ?, last_edited_by_id = ?, last_edited_by_username = ?
		WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query,
		e.Content, e.Date, e.UpdatedAt,
		e.LastEditedBy.ID, e.LastEditedBy.Username, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *sqlStore) ListEntries(ctx context.Context, shareKey string) ([]models.Entry, error) {
	query := s.rebind(`SELECT id, share_key, content, date, updated_at,
		created_by_id, created_by_username, last_edited_by_id, last_edited_by_username
		FROM journal_entries WHERE share_key = ? ORDER BY date DESC`)

	rows, err := s.db.QueryContext(ctx, query, shareKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *sqlStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func scanEntry(scan func(dest ...interface{}) error) (*models.Entry, error) {
	var (
		e                                models.Entry
		createdByID, createdByUsername   sql.NullString
		lastEditedByID, lastEditedByName sql.NullString
	)
	err := scan(&e.ID, &e.ShareKey, &e.Content, &e.Date, &e.UpdatedAt,
		&createdByID, &createdByUsername, &lastEditedByID, &lastEditedByName)
	if err != nil {
		return nil, err
	}
	e.CreatedBy = models.Identity{ID: nullToPtr(createdByID), Username: nullToPtr(createdByUsername)}
	e.LastEditedBy = models.Identity{ID: nullToPtr(lastEditedByID), Username: nullToPtr(lastEditedByName)}
	return &e, nil
}

// requireRow turns a zero-row UPDATE/DELETE into models.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
