package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
	"github.com/AnshRaj112/journalvault-backend/internal/services"
)

// Handler carries the services every route needs. The storage adapter is
// injected through the services at startup; handlers never touch it.
type Handler struct {
	journals *services.JournalService
	sync     *services.SyncService
	feed     *services.FeedHub
}

func New(journals *services.JournalService, syncSvc *services.SyncService, feed *services.FeedHub) *Handler {
	return &Handler{journals: journals, sync: syncSvc, feed: feed}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Error: message})
}

// respondServiceError maps the domain error taxonomy onto HTTP status
// codes. fallback is the endpoint's message for an unexpected storage fault.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case models.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "Journal not found")
	case errors.Is(err, models.ErrConflict):
		respondError(w, http.StatusConflict, "Share key already exists")
	case errors.Is(err, models.ErrForbidden):
		respondError(w, http.StatusForbidden, "Only the journal creator can change permissions")
	default:
		log.Printf("storage fault: %v", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

// NotFound answers any unknown route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "Endpoint not found")
}
