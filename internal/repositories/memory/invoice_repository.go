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

// InvoiceRepository is a mutex-guarded id→invoice arena.
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]domain.Invoice
}

// NewInvoiceRepository creates an empty invoice arena.
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{invoices: make(map[string]domain.Invoice)}
}

var _ portsrepo.InvoiceRepository = (*InvoiceRepository)(nil)

// SaveInvoice stores a new invoice.
func (r *InvoiceRepository) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.invoices[invoice.InvoiceID]; exists {
		return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
	}
	r.invoices[invoice.InvoiceID] = cloneInvoice(invoice)
	return nil
}

// FindInvoiceByID returns a copy of the invoice or ErrNotFound.
func (r *InvoiceRepository) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[invoiceID]
	if !ok {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	clone := cloneInvoice(invoice)
	return &clone, nil
}

// UpdateInvoice overwrites an existing invoice.
func (r *InvoiceRepository) UpdateInvoice(_ context.Context, invoice domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[invoice.InvoiceID]; !ok {
		return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrNotFound)
	}
	r.invoices[invoice.InvoiceID] = cloneInvoice(invoice)
	return nil
}

// ListInvoices returns all invoices ordered by invoice number.
func (r *InvoiceRepository) ListInvoices(_ context.Context) ([]domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Invoice, 0, len(r.invoices))
	for _, invoice := range r.invoices {
		out = append(out, cloneInvoice(invoice))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	return out, nil
}

func cloneInvoice(invoice domain.Invoice) domain.Invoice {
	items := make([]domain.InvoiceItem, len(invoice.Items))
	copy(items, invoice.Items)
	invoice.Items = items

	payments := make([]domain.Payment, len(invoice.Payments))
	copy(payments, invoice.Payments)
	invoice.Payments = payments
	return invoice
}
