package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
	"github.com/AnshRaj112/journalvault-backend/internal/store"
	"github.com/AnshRaj112/journalvault-backend/pkg/utils"
)

// SyncService owns the batch merge/upsert protocol offline clients use to
// reconcile their local entries with a shared journal.
type SyncService struct {
	store store.Store
}

func NewSyncService(st store.Store) *SyncService {
	return &SyncService{store: st}
}

// EntryInput is one entry as submitted by a client in a sync batch.
type EntryInput struct {
	ID           string           `json:"id"`
	Content      string           `json:"content"`
	Date         string           `json:"date"`
	UpdatedAt    string           `json:"updatedAt,omitempty"`
	CreatedBy    *models.Identity `json:"createdBy,omitempty"`
	LastEditedBy *models.Identity `json:"lastEditedBy,omitempty"`
}

// SyncedEntry reports one successfully upserted entry.
type SyncedEntry struct {
	ID     string `json:"id"`
	Synced bool   `json:"synced"`
}

// FailedEntry reports one entry that could not be synced, with the
// submitted entry echoed back so the client can retry or drop it.
type FailedEntry struct {
	Entry EntryInput `json:"entry"`
	Error string     `json:"error"`
}

// SyncResult is the outcome of one batch. Every submitted entry lands in
// exactly one of Synced or Failed.
type SyncResult struct {
	Synced  []SyncedEntry `json:"synced"`
	Failed  []FailedEntry `json:"failed"`
	Message string        `json:"message"`
}

// Sync upserts a batch of entries against one journal. Entries are
// processed sequentially and independently: a bad or failing entry is
// recorded in Failed and never aborts the rest. After a non-empty batch
// the journal's updated_at is bumped regardless of per-entry failures.
// An empty batch is a no-op success and does not touch the journal.
func (s *SyncService) Sync(ctx context.Context, key string, entries []EntryInput) (*SyncResult, error) {
	if !utils.ValidShareKey(key) {
		return nil, models.NewValidationError("Invalid share key format")
	}

	if _, err := s.store.GetJournal(ctx, key); err != nil {
		return nil, err
	}

	result := &SyncResult{Synced: []SyncedEntry{}, Failed: []FailedEntry{}}
	if len(entries) == 0 {
		result.Message = "No entries to sync"
		return result, nil
	}

	for _, in := range entries {
		if in.ID == "" || in.Content == "" || in.Date == "" {
			result.Failed = append(result.Failed, FailedEntry{
				Entry: in,
				Error: "Missing required fields (id, content, date)",
			})
			continue
		}
		if err := s.upsertEntry(ctx, key, in); err != nil {
			result.Failed = append(result.Failed, FailedEntry{Entry: in, Error: err.Error()})
			continue
		}
		result.Synced = append(result.Synced, SyncedEntry{ID: in.ID, Synced: true})
	}

	if err := s.store.TouchJournal(ctx, key, time.Now().UTC()); err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Synced %d entries, %d failed", len(result.Synced), len(result.Failed))
	return result, nil
}

// upsertEntry merges one entry by id. Entries are looked up by id alone,
// not scoped to the journal, matching how clients generate globally
// unique ids. On update the original creator is preserved and the last
// editor falls back to that creator field by field; on insert the last
// editor falls back to the submitted creator.
func (s *SyncService) upsertEntry(ctx context.Context, key string, in EntryInput) error {
	updatedAt := in.UpdatedAt
	if updatedAt == "" {
		updatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	existing, err := s.store.GetEntry(ctx, in.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	if existing != nil {
		existing.Content = in.Content
		existing.Date = in.Date
		existing.UpdatedAt = updatedAt
		existing.LastEditedBy = models.Identity{
			ID:       coalesce(identityID(in.LastEditedBy), existing.CreatedBy.ID),
			Username: coalesce(identityUsername(in.LastEditedBy), existing.CreatedBy.Username),
		}
		return s.store.UpdateEntry(ctx, existing)
	}

	createdBy := models.Identity{
		ID:       identityID(in.CreatedBy),
		Username: identityUsername(in.CreatedBy),
	}
	entry := &models.Entry{
		ID:        in.ID,
		ShareKey:  key,
		Content:   in.Content,
		Date:      in.Date,
		UpdatedAt: updatedAt,
		CreatedBy: createdBy,
		LastEditedBy: models.Identity{
			ID:       coalesce(identityID(in.LastEditedBy), createdBy.ID),
			Username: coalesce(identityUsername(in.LastEditedBy), createdBy.Username),
		},
	}
	return s.store.InsertEntry(ctx, entry)
}

func identityID(id *models.Identity) *string {
	if id == nil {
		return nil
	}
	return id.ID
}

func identityUsername(id *models.Identity) *string {
	if id == nil {
		return nil
	}
	return id.Username
}

func coalesce(a, b *string) *string {
	if a != nil && *a != "" {
		return a
	}
	return b
}
