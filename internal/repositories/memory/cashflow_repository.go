package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
)

// CashFlowRepository buckets immutable records under year-month keys.
type CashFlowRepository struct {
	mu      sync.RWMutex
	buckets map[string][]domain.CashFlowRecord
}

// NewCashFlowRepository creates an empty cash-flow arena.
func NewCashFlowRepository() *CashFlowRepository {
	return &CashFlowRepository{buckets: make(map[string][]domain.CashFlowRecord)}
}

var _ portsrepo.CashFlowRepository = (*CashFlowRepository)(nil)

// SaveRecord appends the record to its year-month bucket.
func (r *CashFlowRepository) SaveRecord(_ context.Context, record domain.CashFlowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buckets[record.BucketKey] = append(r.buckets[record.BucketKey], record)
	return nil
}

// ListRecordsThrough returns every record dated at or before asOf,
// ordered by date.
func (r *CashFlowRepository) ListRecordsThrough(ctx context.Context, asOf time.Time) ([]domain.CashFlowRecord, error) {
	return r.ListRecordsBetween(ctx, time.Time{}, asOf)
}

// ListRecordsBetween returns records with from <= date <= to, ordered by
// date. A zero from matches everything from the beginning.
func (r *CashFlowRepository) ListRecordsBetween(_ context.Context, from, to time.Time) ([]domain.CashFlowRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CashFlowRecord, 0)
	for _, bucket := range r.buckets {
		for _, record := range bucket {
			if !from.IsZero() && record.Date.Before(from) {
				continue
			}
			if !to.IsZero() && record.Date.After(to) {
				continue
			}
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].RecordID < out[j].RecordID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
