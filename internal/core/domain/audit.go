package domain

import "time"

// AuditEntry is one record in the append-only audit trail.
type AuditEntry struct {
	EntryID     string    `json:"entryID"` // ULID, lexicographically sortable by time
	Action      string    `json:"action"`
	EntityID    string    `json:"entityID"`
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
}
