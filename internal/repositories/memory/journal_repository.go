package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
)

// JournalRepository is a mutex-guarded id→entry arena.
type JournalRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.JournalEntry
}

// NewJournalRepository creates an empty journal arena.
func NewJournalRepository() *JournalRepository {
	return &JournalRepository{entries: make(map[string]domain.JournalEntry)}
}

var _ portsrepo.JournalRepository = (*JournalRepository)(nil)

// SaveEntry stores a new journal entry.
func (r *JournalRepository) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.JournalID]; exists {
		return fmt.Errorf("journal entry %s: %w", entry.JournalID, apperrors.ErrDuplicate)
	}
	r.entries[entry.JournalID] = cloneEntry(entry)
	return nil
}

// FindEntryByID returns a copy of the entry or ErrNotFound.
func (r *JournalRepository) FindEntryByID(_ context.Context, journalID string) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[journalID]
	if !ok {
		return nil, fmt.Errorf("journal entry %s: %w", journalID, apperrors.ErrNotFound)
	}
	clone := cloneEntry(entry)
	return &clone, nil
}

// UpdateEntry overwrites an existing entry.
func (r *JournalRepository) UpdateEntry(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.JournalID]; !ok {
		return fmt.Errorf("journal entry %s: %w", entry.JournalID, apperrors.ErrNotFound)
	}
	r.entries[entry.JournalID] = cloneEntry(entry)
	return nil
}

// ListEntries returns all entries ordered by creation time.
func (r *JournalRepository) ListEntries(_ context.Context) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.JournalEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, cloneEntry(entry))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].JournalID < out[j].JournalID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// cloneEntry copies the entry with its line slice so callers cannot
// mutate stored state through the returned value.
func cloneEntry(entry domain.JournalEntry) domain.JournalEntry {
	lines := make([]domain.JournalLine, len(entry.Lines))
	copy(lines, entry.Lines)
	entry.Lines = lines
	return entry
}
