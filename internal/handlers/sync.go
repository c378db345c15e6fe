package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/journalvault-backend/internal/services"
)

type syncEntriesRequest struct {
	// Pointer so a missing or null entries field can be told apart from
	// an empty batch.
	Entries *[]services.EntryInput `json:"entries"`
}

type syncEntriesResponse struct {
	Success bool                   `json:"success"`
	Synced  []services.SyncedEntry `json:"synced"`
	Failed  []services.FailedEntry `json:"failed"`
	Message string                 `json:"message"`
}

// SyncEntries handles POST /journal/{key}/entries/sync. Per-entry
// failures are reported in the failed list; the endpoint itself only
// fails on a bad key, a missing journal, a malformed body, or a fault
// covering the whole batch.
func (h *Handler) SyncEntries(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req syncEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Entries == nil {
		respondError(w, http.StatusBadRequest, "Entries array is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.sync.Sync(ctx, key, *req.Entries)
	if err != nil {
		respondServiceError(w, err, "Database error during sync")
		return
	}

	if len(result.Synced) > 0 {
		h.feed.Publish(services.FeedEvent{
			Type:     "entries_synced",
			ShareKey: key,
			Synced:   len(result.Synced),
			Failed:   len(result.Failed),
		})
	}

	respondJSON(w, http.StatusOK, syncEntriesResponse{
		Success: true,
		Synced:  result.Synced,
		Failed:  result.Failed,
		Message: result.Message,
	})
}
