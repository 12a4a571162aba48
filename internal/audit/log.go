// Package audit keeps the append-only, capacity-bounded trail of every
// mutating operation in the accounting core.
package audit

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/ids"
	"github.com/nimbuserp/accounting/internal/platform/logging"
)

// DefaultCapacity bounds the trail when no capacity is configured.
const DefaultCapacity = 10000

// Query filters audit entries. Zero-valued fields match everything.
type Query struct {
	Action   string
	EntityID string
	From     time.Time
	To       time.Time
	Limit    int
}

// Trail is a thread-safe, bounded audit log. The oldest entries are
// evicted once capacity is exceeded.
type Trail struct {
	mu       sync.RWMutex
	entries  []domain.AuditEntry
	capacity int
	idGen    ids.Generator
}

// NewTrail creates a trail with the given capacity (DefaultCapacity if <= 0).
func NewTrail(capacity int, idGen ids.Generator) *Trail {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if idGen == nil {
		idGen = ids.NewULIDGenerator()
	}
	return &Trail{capacity: capacity, idGen: idGen}
}

// Record appends one entry and returns it.
func (t *Trail) Record(ctx context.Context, action, entityID, description, actor string) domain.AuditEntry {
	entry := domain.AuditEntry{
		EntryID:     t.idGen.NewID(),
		Action:      strings.TrimSpace(action),
		EntityID:    entityID,
		Description: description,
		Actor:       actor,
		Timestamp:   time.Now().UTC(),
	}

	t.mu.Lock()
	t.entries = append(t.entries, entry)
	if overflow := len(t.entries) - t.capacity; overflow > 0 {
		t.entries = t.entries[overflow:]
	}
	t.mu.Unlock()

	logging.FromCtx(ctx).Debug("Audit entry recorded",
		"action", entry.Action, "entity_id", entry.EntityID, "actor", entry.Actor)
	return entry
}

// Find returns entries matching the query, oldest first.
func (t *Trail) Find(q Query) []domain.AuditEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.AuditEntry, 0)
	for _, e := range t.entries {
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		if q.EntityID != "" && e.EntityID != q.EntityID {
			continue
		}
		if !q.From.IsZero() && e.Timestamp.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && e.Timestamp.After(q.To) {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out
}

// Len reports the number of retained entries.
func (t *Trail) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
