package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
)

func newTestJSONStore(t *testing.T) (Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.json")
	s, err := OpenJSONFile(path)
	require.NoError(t, err)
	return s, path
}

func testJournal(key string) *models.Journal {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Journal{
		ShareKey:  key,
		Title:     "Trip",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testEntry(id, key, date string) *models.Entry {
	return &models.Entry{
		ID:        id,
		ShareKey:  key,
		Content:   "Day " + id,
		Date:      date,
		UpdatedAt: date,
	}
}

func TestJSONFileCreateJournalConflict(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	j := testJournal("ABCD1234")
	require.NoError(t, s.CreateJournal(ctx, j))

	dup := testJournal("ABCD1234")
	dup.Title = "Other"
	assert.ErrorIs(t, s.CreateJournal(ctx, dup), models.ErrConflict)

	// The existing record must not be mutated by the rejected insert.
	got, err := s.GetJournal(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "Trip", got.Title)
}

func TestJSONFileGetJournalNotFound(t *testing.T) {
	s, _ := newTestJSONStore(t)
	_, err := s.GetJournal(context.Background(), "NOPE0000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestJSONFileListJournalsOrder(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, key := range []string{"AAAA1111", "BBBB2222", "CCCC3333"} {
		j := testJournal(key)
		j.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.CreateJournal(ctx, j))
	}

	journals, err := s.ListJournals(ctx)
	require.NoError(t, err)
	require.Len(t, journals, 3)
	assert.Equal(t, "CCCC3333", journals[0].ShareKey)
	assert.Equal(t, "BBBB2222", journals[1].ShareKey)
	assert.Equal(t, "AAAA1111", journals[2].ShareKey)
}

func TestJSONFileTouchJournal(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	j := testJournal("ABCD1234")
	require.NoError(t, s.CreateJournal(ctx, j))

	at := j.UpdatedAt.Add(time.Hour)
	require.NoError(t, s.TouchJournal(ctx, "ABCD1234", at))

	got, err := s.GetJournal(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(at))

	assert.ErrorIs(t, s.TouchJournal(ctx, "NOPE0000", at), models.ErrNotFound)
}

func TestJSONFileSetJournalPermissions(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateJournal(ctx, testJournal("ABCD1234")))
	require.NoError(t, s.SetJournalPermissions(ctx, "ABCD1234", true, time.Now().UTC()))

	got, err := s.GetJournal(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.True(t, got.EditableByAnyone)

	assert.ErrorIs(t, s.SetJournalPermissions(ctx, "NOPE0000", true, time.Now().UTC()), models.ErrNotFound)
}

func TestJSONFileDeleteJournalCascade(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateJournal(ctx, testJournal("ABCD1234")))
	require.NoError(t, s.CreateJournal(ctx, testJournal("EFGH5678")))
	require.NoError(t, s.InsertEntry(ctx, testEntry("e1", "ABCD1234", "2024-01-01")))
	require.NoError(t, s.InsertEntry(ctx, testEntry("e2", "ABCD1234", "2024-01-02")))
	require.NoError(t, s.InsertEntry(ctx, testEntry("e3", "EFGH5678", "2024-01-03")))

	require.NoError(t, s.DeleteJournal(ctx, "ABCD1234"))

	_, err := s.GetJournal(ctx, "ABCD1234")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.GetEntry(ctx, "e1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.GetEntry(ctx, "e2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The other journal and its entries survive.
	_, err = s.GetJournal(ctx, "EFGH5678")
	assert.NoError(t, err)
	_, err = s.GetEntry(ctx, "e3")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.DeleteJournal(ctx, "ABCD1234"), models.ErrNotFound)
}

func TestJSONFileEntryUpsert(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateJournal(ctx, testJournal("ABCD1234")))

	e := testEntry("e1", "ABCD1234", "2024-01-01")
	require.NoError(t, s.InsertEntry(ctx, e))
	assert.ErrorIs(t, s.InsertEntry(ctx, e), models.ErrConflict)

	e.Content = "edited"
	require.NoError(t, s.UpdateEntry(ctx, e))

	got, err := s.GetEntry(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	assert.ErrorIs(t, s.UpdateEntry(ctx, testEntry("ghost", "ABCD1234", "2024-01-01")), models.ErrNotFound)
}

func TestJSONFileListEntriesOrder(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateJournal(ctx, testJournal("ABCD1234")))
	require.NoError(t, s.InsertEntry(ctx, testEntry("e1", "ABCD1234", "2024-01-01")))
	require.NoError(t, s.InsertEntry(ctx, testEntry("e3", "ABCD1234", "2024-03-01")))
	require.NoError(t, s.InsertEntry(ctx, testEntry("e2", "ABCD1234", "2024-02-01")))

	entries, err := s.ListEntries(ctx, "ABCD1234")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e3", entries[0].ID)
	assert.Equal(t, "e2", entries[1].ID)
	assert.Equal(t, "e1", entries[2].ID)
}

func TestJSONFilePersistsAcrossReopen(t *testing.T) {
	s, path := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateJournal(ctx, testJournal("ABCD1234")))
	require.NoError(t, s.InsertEntry(ctx, testEntry("e1", "ABCD1234", "2024-01-01")))
	require.NoError(t, s.Close(ctx))

	reopened, err := OpenJSONFile(path)
	require.NoError(t, err)

	j, err := reopened.GetJournal(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "Trip", j.Title)

	entries, err := reopened.ListEntries(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
