package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
	"github.com/AnshRaj112/journalvault-backend/internal/services"
)

const requestTimeout = 5 * time.Second

type createSharedJournalRequest struct {
	ShareKey  string           `json:"shareKey"`
	Title     string           `json:"title"`
	CreatedBy *models.Identity `json:"createdBy"`
}

type createSharedJournalResponse struct {
	Success  bool   `json:"success"`
	ShareKey string `json:"shareKey"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// CreateSharedJournal handles POST /journal/createShared.
func (h *Handler) CreateSharedJournal(w http.ResponseWriter, r *http.Request) {
	var req createSharedJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	createdBy := models.Identity{}
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	res, err := h.journals.Create(ctx, req.Title, req.ShareKey, createdBy)
	if err != nil {
		respondServiceError(w, err, "Failed to create shared journal")
		return
	}

	respondJSON(w, http.StatusOK, createSharedJournalResponse{
		Success:  true,
		ShareKey: res.ShareKey,
		Title:    res.Title,
		Message:  res.Message,
	})
}

type getJournalEntriesResponse struct {
	Success bool            `json:"success"`
	Journal *models.Journal `json:"journal"`
	Entries []models.Entry  `json:"entries"`
}

// GetJournalEntries handles GET /journal/{key}/entries.
func (h *Handler) GetJournalEntries(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res, err := h.journals.Get(ctx, key)
	if err != nil {
		respondServiceError(w, err, "Database error")
		return
	}

	respondJSON(w, http.StatusOK, getJournalEntriesResponse{
		Success: true,
		Journal: res.Journal,
		Entries: res.Entries,
	})
}

type updatePermissionsRequest struct {
	EditableByAnyone *bool  `json:"editableByAnyone"`
	UserID           string `json:"userId"`
}

type updatePermissionsResponse struct {
	Success          bool   `json:"success"`
	EditableByAnyone bool   `json:"editableByAnyone"`
	Message          string `json:"message"`
}

// UpdatePermissions handles PATCH /journal/{key}/permissions.
func (h *Handler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req updatePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "editableByAnyone must be a boolean")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	editable, err := h.journals.SetPermissions(ctx, key, req.EditableByAnyone, req.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to update permissions")
		return
	}

	message := "Journal permissions updated: creator only"
	if editable {
		message = "Journal permissions updated: anyone can edit"
	}

	h.feed.Publish(services.FeedEvent{
		Type:             "permissions_changed",
		ShareKey:         key,
		EditableByAnyone: &editable,
	})

	respondJSON(w, http.StatusOK, updatePermissionsResponse{
		Success:          true,
		EditableByAnyone: editable,
		Message:          message,
	})
}

type listJournalsResponse struct {
	Success  bool                    `json:"success"`
	Journals []models.JournalSummary `json:"journals"`
}

// ListJournals handles GET /journals.
func (h *Handler) ListJournals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	journals, err := h.journals.List(ctx)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch journals")
		return
	}

	respondJSON(w, http.StatusOK, listJournalsResponse{Success: true, Journals: journals})
}

type deleteJournalResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteJournal handles DELETE /journal/{key}.
func (h *Handler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.journals.Delete(ctx, key); err != nil {
		respondServiceError(w, err, "Failed to delete journal")
		return
	}

	h.feed.Publish(services.FeedEvent{Type: "journal_deleted", ShareKey: key})

	respondJSON(w, http.StatusOK, deleteJournalResponse{
		Success: true,
		Message: "Journal and all entries deleted successfully",
	})
}
