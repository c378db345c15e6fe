package store

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
)

// jsonFileStore keeps everything in memory and rewrites one JSON document
// on every mutation. Writes go through a temp file and rename so a crash
// mid-write never corrupts the store; that also makes the cascade delete
// atomic, the state only changes when the rename lands.
type jsonFileStore struct {
	path string
	mu   sync.RWMutex
	data jsonFileData
}

type jsonFileData struct {
	Journals map[string]*models.Journal `json:"journals"`
	Entries  map[string]*models.Entry   `json:"entries"`
}

// OpenJSONFile opens (or creates) the JSON document store at path.
func OpenJSONFile(path string) (Store, error) {
	s := &jsonFileStore{
		path: path,
		data: jsonFileData{
			Journals: make(map[string]*models.Journal),
			Entries:  make(map[string]*models.Entry),
		},
	}

	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, err
		}
		if s.data.Journals == nil {
			s.data.Journals = make(map[string]*models.Journal)
		}
		if s.data.Entries == nil {
			s.data.Entries = make(map[string]*models.Entry)
		}
	}

	log.Printf("✅ JSON store ready at %s", path)
	return s, nil
}

// save persists the full state. Callers hold the write lock.
func (s *jsonFileStore) save() error {
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *jsonFileStore) CreateJournal(ctx context.Context, j *models.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data.Journals[j.ShareKey]; exists {
		return models.ErrConflict
	}
	copied := *j
	s.data.Journals[j.ShareKey] = &copied
	if err := s.save(); err != nil {
		delete(s.data.Journals, j.ShareKey)
		return err
	}
	return nil
}

func (s *jsonFileStore) GetJournal(ctx context.Context, shareKey string) (*models.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.data.Journals[shareKey]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *j
	return &copied, nil
}

func (s *jsonFileStore) ListJournals(ctx context.Context) ([]models.JournalSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	journals := make([]models.JournalSummary, 0, len(s.data.Journals))
	for _, j := range s.data.Journals {
		journals = append(journals, models.JournalSummary{
			ShareKey:  j.ShareKey,
			Title:     j.Title,
			CreatedAt: j.CreatedAt,
			UpdatedAt: j.UpdatedAt,
		})
	}
	sort.Slice(journals, func(i, k int) bool {
		return journals[i].CreatedAt.After(journals[k].CreatedAt)
	})
	return journals, nil
}

func (s *jsonFileStore) TouchJournal(ctx context.Context, shareKey string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.data.Journals[shareKey]
	if !ok {
		return models.ErrNotFound
	}
	prev := j.UpdatedAt
	j.UpdatedAt = at
	if err := s.save(); err != nil {
		j.UpdatedAt = prev
		return err
	}
	return nil
}

func (s *jsonFileStore) SetJournalPermissions(ctx context.Context, shareKey string, editableByAnyone bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.data.Journals[shareKey]
	if !ok {
		return models.ErrNotFound
	}
	prevFlag, prevAt := j.EditableByAnyone, j.UpdatedAt
	j.EditableByAnyone = editableByAnyone
	j.UpdatedAt = at
	if err := s.save(); err != nil {
		j.EditableByAnyone = prevFlag
		j.UpdatedAt = prevAt
		return err
	}
	return nil
}

func (s *jsonFileStore) DeleteJournal(ctx context.Context, shareKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.data.Journals[shareKey]
	if !ok {
		return models.ErrNotFound
	}

	removed := map[string]*models.Entry{}
	for id, e := range s.data.Entries {
		if e.ShareKey == shareKey {
			removed[id] = e
			delete(s.data.Entries, id)
		}
	}
	delete(s.data.Journals, shareKey)

	if err := s.save(); err != nil {
		s.data.Journals[shareKey] = j
		for id, e := range removed {
			s.data.Entries[id] = e
		}
		return err
	}
	return nil
}

func (s *jsonFileStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data.Entries[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *jsonFileStore) InsertEntry(ctx context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data.Entries[e.ID]; exists {
		return models.ErrConflict
	}
	copied := *e
	s.data.Entries[e.ID] = &copied
	if err := s.save(); err != nil {
		delete(s.data.Entries, e.ID)
		return err
	}
	return nil
}

func (s *jsonFileStore) UpdateEntry(ctx context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.data.Entries[e.ID]
	if !ok {
		return models.ErrNotFound
	}
	prev := *existing
	existing.Content = e.Content
	existing.Date = e.Date
	existing.UpdatedAt = e.UpdatedAt
	existing.LastEditedBy = e.LastEditedBy
	if err := s.save(); err != nil {
		*existing = prev
		return err
	}
	return nil
}

func (s *jsonFileStore) ListEntries(ctx context.Context, shareKey string) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []models.Entry{}
	for _, e := range s.data.Entries {
		if e.ShareKey == shareKey {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, k int) bool {
		return entries[i].Date > entries[k].Date
	})
	return entries, nil
}

func (s *jsonFileStore) Close(ctx context.Context) error {
	return nil
}
