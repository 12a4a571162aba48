package services

import (
	"context"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/dto"
)

// InvoiceSvcFacade computes invoice totals and drives the journal
// engine for receivables, revenue, tax liability and payments.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)
	PostInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)
	CancelInvoice(ctx context.Context, invoiceID string, reason string, userID string) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}
