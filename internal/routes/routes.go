package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/journalvault-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler) {
	r.Get("/health", h.Health)

	// Shared journal routes
	r.Post("/journal/createShared", h.CreateSharedJournal)
	r.Get("/journal/{key}/entries", h.GetJournalEntries)
	r.Post("/journal/{key}/entries/sync", h.SyncEntries)
	r.Patch("/journal/{key}/permissions", h.UpdatePermissions)
	r.Delete("/journal/{key}", h.DeleteJournal)
	r.Get("/journals", h.ListJournals)

	// WebSocket endpoint for live journal change events
	r.Get("/ws/journal/{key}", h.JournalFeed)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)
}
