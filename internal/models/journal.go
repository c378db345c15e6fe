package models

import "time"

// Identity records who created or last edited a record. The shared-journal
// API works without accounts, so both fields are nullable.
type Identity struct {
	ID       *string `json:"id" bson:"id,omitempty"`
	Username *string `json:"username" bson:"username,omitempty"`
}

// Journal is a shared journal, addressed by its 8-character share key.
type Journal struct {
	ShareKey         string    `json:"shareKey" bson:"_id"`
	Title            string    `json:"title" bson:"title"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updated_at"`
	CreatedBy        Identity  `json:"createdBy" bson:"created_by"`
	EditableByAnyone bool      `json:"editableByAnyone" bson:"editable_by_anyone"`
}

// Entry is one dated record belonging to exactly one journal.
//
// Date and UpdatedAt are kept as the ISO strings clients send: offline
// clients supply their own timestamps and the server never reinterprets
// them, only orders by them (ISO strings sort chronologically).
type Entry struct {
	ID           string   `json:"id" bson:"_id"`
	ShareKey     string   `json:"shareKey" bson:"share_key"`
	Content      string   `json:"content" bson:"content"`
	Date         string   `json:"date" bson:"date"`
	UpdatedAt    string   `json:"updatedAt" bson:"updated_at"`
	CreatedBy    Identity `json:"createdBy" bson:"created_by"`
	LastEditedBy Identity `json:"lastEditedBy" bson:"last_edited_by"`
}

// JournalSummary is the listing shape returned by GET /journals.
type JournalSummary struct {
	ShareKey  string    `json:"share_key" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
