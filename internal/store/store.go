package store

import (
	"context"
	"fmt"
	"time"

	"github.com/AnshRaj112/journalvault-backend/internal/config"
	"github.com/AnshRaj112/journalvault-backend/internal/models"
)

// Store is the persistence contract shared by every backend. All methods
// return models sentinel errors for domain outcomes (models.ErrNotFound,
// models.ErrConflict); anything else is a storage fault.
type Store interface {
	// CreateJournal inserts a new journal. A duplicate share key fails
	// with models.ErrConflict and never touches the existing record.
	CreateJournal(ctx context.Context, j *models.Journal) error
	GetJournal(ctx context.Context, shareKey string) (*models.Journal, error)
	// ListJournals returns all journals ordered by creation time, newest first.
	ListJournals(ctx context.Context) ([]models.JournalSummary, error)
	// TouchJournal advances the journal's updated_at timestamp.
	TouchJournal(ctx context.Context, shareKey string, at time.Time) error
	SetJournalPermissions(ctx context.Context, shareKey string, editableByAnyone bool, at time.Time) error
	// DeleteJournal removes the journal and all its entries as one atomic
	// unit. Missing journal fails with models.ErrNotFound and leaves the
	// entry deletion unapplied.
	DeleteJournal(ctx context.Context, shareKey string) error

	// GetEntry looks an entry up by id alone, across all journals.
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	InsertEntry(ctx context.Context, e *models.Entry) error
	UpdateEntry(ctx context.Context, e *models.Entry) error
	// ListEntries returns the journal's entries ordered by date, newest first.
	ListEntries(ctx context.Context, shareKey string) ([]models.Entry, error)

	Close(ctx context.Context) error
}

// Open connects the backend selected by STORE_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "sqlite", "":
		return OpenSQLite(cfg.SQLitePath)
	case "postgres":
		return OpenPostgres(cfg.PostgresURI)
	case "mongo":
		return OpenMongo(ctx, cfg.MongoURI)
	case "file":
		return OpenJSONFile(cfg.JSONStorePath)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
