package services

import (
	"context"
	"time"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
	"github.com/AnshRaj112/journalvault-backend/internal/store"
	"github.com/AnshRaj112/journalvault-backend/pkg/utils"
)

// JournalService owns the journal lifecycle: create, read, permission
// toggle, list and cascade delete.
type JournalService struct {
	store store.Store
}

func NewJournalService(st store.Store) *JournalService {
	return &JournalService{store: st}
}

// CreateJournalResult is what Create hands back to the API layer.
type CreateJournalResult struct {
	ShareKey string
	Title    string
	Message  string
}

// JournalWithEntries pairs journal metadata with its entries, newest first.
type JournalWithEntries struct {
	Journal *models.Journal
	Entries []models.Entry
}

// Create makes a new shared journal. An empty title is a validation
// error. The share key is the client's if supplied, otherwise generated;
// either way a duplicate fails with models.ErrConflict and the existing
// journal is never overwritten. editableByAnyone always starts false.
func (s *JournalService) Create(ctx context.Context, title, shareKey string, createdBy models.Identity) (*CreateJournalResult, error) {
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}

	finalKey := shareKey
	if finalKey == "" {
		finalKey = utils.GenerateShareKey()
	}

	now := time.Now().UTC()
	journal := &models.Journal{
		ShareKey:         finalKey,
		Title:            title,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        createdBy,
		EditableByAnyone: false,
	}
	if err := s.store.CreateJournal(ctx, journal); err != nil {
		return nil, err
	}

	return &CreateJournalResult{
		ShareKey: finalKey,
		Title:    title,
		Message:  "Shared journal created successfully",
	}, nil
}

// Get returns the journal and all its entries ordered by date descending.
func (s *JournalService) Get(ctx context.Context, key string) (*JournalWithEntries, error) {
	if !utils.ValidShareKey(key) {
		return nil, models.NewValidationError("Invalid share key format")
	}

	journal, err := s.store.GetJournal(ctx, key)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(ctx, key)
	if err != nil {
		return nil, err
	}
	return &JournalWithEntries{Journal: journal, Entries: entries}, nil
}

// SetPermissions updates the editable-by-anyone flag and bumps updated_at.
//
// The creator check is advisory: it only applies when the request names a
// user AND the journal has a recorded creator. Either side missing lets
// the change through. editable is a pointer so the handler can tell a
// missing/non-boolean field apart from false.
func (s *JournalService) SetPermissions(ctx context.Context, key string, editable *bool, requestingUserID string) (bool, error) {
	if !utils.ValidShareKey(key) {
		return false, models.NewValidationError("Invalid share key format")
	}
	if editable == nil {
		return false, models.NewValidationError("editableByAnyone must be a boolean")
	}

	journal, err := s.store.GetJournal(ctx, key)
	if err != nil {
		return false, err
	}

	if requestingUserID != "" && journal.CreatedBy.ID != nil && *journal.CreatedBy.ID != "" &&
		requestingUserID != *journal.CreatedBy.ID {
		return false, models.ErrForbidden
	}

	if err := s.store.SetJournalPermissions(ctx, key, *editable, time.Now().UTC()); err != nil {
		return false, err
	}
	return *editable, nil
}

// List returns every journal's summary, newest first.
func (s *JournalService) List(ctx context.Context) ([]models.JournalSummary, error) {
	return s.store.ListJournals(ctx)
}

// Delete removes the journal and all its entries atomically.
func (s *JournalService) Delete(ctx context.Context, key string) error {
	if !utils.ValidShareKey(key) {
		return models.NewValidationError("Invalid share key format")
	}
	return s.store.DeleteJournal(ctx, key)
}
