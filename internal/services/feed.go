package services

import (
	"log"
	"sync"
	"time"
)

// FeedEvent is pushed to WebSocket viewers of a shared journal whenever
// it changes.
type FeedEvent struct {
	Type             string    `json:"type"` // "entries_synced", "permissions_changed", "journal_deleted"
	ShareKey         string    `json:"shareKey"`
	Synced           int       `json:"synced,omitempty"`
	Failed           int       `json:"failed,omitempty"`
	EditableByAnyone *bool     `json:"editableByAnyone,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// FeedConn is the minimal connection surface the hub needs.
type FeedConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type feedViewer struct {
	conn FeedConn
	mu   sync.Mutex // serializes writes; websocket conns allow one writer
}

// FeedHub fans journal events out to connected viewers, keyed by share key.
type FeedHub struct {
	mu      sync.RWMutex
	viewers map[string]map[*feedViewer]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{viewers: make(map[string]map[*feedViewer]struct{})}
}

// Subscribe registers a viewer for a share key and returns an unsubscribe
// function. Unsubscribing does not close the connection.
func (h *FeedHub) Subscribe(shareKey string, conn FeedConn) func() {
	v := &feedViewer{conn: conn}

	h.mu.Lock()
	if h.viewers[shareKey] == nil {
		h.viewers[shareKey] = make(map[*feedViewer]struct{})
	}
	h.viewers[shareKey][v] = struct{}{}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.viewers[shareKey]; ok {
			delete(set, v)
			if len(set) == 0 {
				delete(h.viewers, shareKey)
			}
		}
	}
}

// Publish sends an event to all viewers of its share key. Sends are
// best-effort; a slow or broken viewer never blocks the publisher.
func (h *FeedHub) Publish(event FeedEvent) {
	if event.ShareKey == "" {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	targets := make([]*feedViewer, 0, len(h.viewers[event.ShareKey]))
	for v := range h.viewers[event.ShareKey] {
		targets = append(targets, v)
	}
	h.mu.RUnlock()

	for _, v := range targets {
		go func(v *feedViewer) {
			v.mu.Lock()
			defer v.mu.Unlock()
			if err := v.conn.WriteJSON(event); err != nil {
				log.Printf("error writing feed event to websocket: %v", err)
			}
		}(v)
	}
}
