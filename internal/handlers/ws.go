package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// JournalFeed handles GET /ws/journal/{key}: a WebSocket stream of change
// events (entries synced, permissions changed, journal deleted) for one
// shared journal. Viewers are read-only; inbound messages are discarded.
func (h *Handler) JournalFeed(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if _, err := h.journals.Get(ctx, key); err != nil {
		respondServiceError(w, err, "Database error")
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	unsubscribe := h.feed.Subscribe(key, conn)
	defer unsubscribe()

	// Block until the client goes away; the hub writes events meanwhile.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
