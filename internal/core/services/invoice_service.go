package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
	portssvc "github.com/nimbuserp/accounting/internal/core/ports/services"
	"github.com/nimbuserp/accounting/internal/dto"
	"github.com/nimbuserp/accounting/internal/events"
	"github.com/nimbuserp/accounting/internal/ids"
)

var (
	ErrOverpayment    = errors.New("payment exceeds amount due")
	ErrInvoiceNotOpen = errors.New("invoice is not open for this operation")
)

// invoiceService computes invoice arithmetic and drives the journal
// engine for receivable, revenue, tax and cash postings. It never
// mutates account balances directly.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepository
	accountSvc  portssvc.AccountSvcFacade
	journalSvc  portssvc.JournalSvcFacade
	numberSeq   *ids.Sequence
}

// NewInvoiceService creates the invoice and payment subsystem.
func NewInvoiceService(repo portsrepo.InvoiceRepository, accountSvc portssvc.AccountSvcFacade, journalSvc portssvc.JournalSvcFacade, base BaseService) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: base,
		invoiceRepo: repo,
		accountSvc:  accountSvc,
		journalSvc:  journalSvc,
		numberSeq:   ids.NewSequence("INV"),
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// effectiveTaxRate resolves the rate for one item: item rate, then
// invoice rate, then the engine default.
func (s *invoiceService) effectiveTaxRate(item dto.InvoiceItemRequest, req dto.CreateInvoiceRequest) decimal.Decimal {
	if item.TaxRate != nil {
		return *item.TaxRate
	}
	if req.TaxRate != nil {
		return *req.TaxRate
	}
	return s.Cfg.DefaultTaxRate
}

// CreateInvoice computes line totals and tax, then stores the invoice in
// draft status with the full amount due.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	items := make([]domain.InvoiceItem, len(req.Items))
	subtotal := decimal.Zero
	totalTax := decimal.Zero
	for i, ir := range req.Items {
		if ir.Quantity.IsNegative() || ir.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d has a negative quantity or unit price", apperrors.ErrValidation, i)
		}
		rate := s.effectiveTaxRate(ir, req)
		lineTotal := s.Cfg.Round(ir.Quantity.Mul(ir.UnitPrice))
		tax := s.Cfg.Round(lineTotal.Mul(rate))
		items[i] = domain.InvoiceItem{
			Description: ir.Description,
			Quantity:    ir.Quantity,
			UnitPrice:   ir.UnitPrice,
			TaxRate:     ir.TaxRate,
			LineTotal:   lineTotal,
			Tax:         tax,
		}
		subtotal = s.Cfg.Round(subtotal.Add(lineTotal))
		totalTax = s.Cfg.Round(totalTax.Add(tax))
	}
	total := s.Cfg.Round(subtotal.Add(totalTax))

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.Cfg.DefaultCurrency
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: s.numberSeq.Next(),
		CustomerName:  req.CustomerName,
		Items:         items,
		Subtotal:      subtotal,
		TotalTax:      totalTax,
		Total:         total,
		AmountPaid:    decimal.Zero,
		AmountDue:     total,
		Status:        domain.InvoiceDraft,
		CurrencyCode:  currency,
		DueDate:       req.DueDate,
		Payments:      []domain.Payment{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice")
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.RecordAudit(ctx, "invoice.created", invoice.InvoiceID,
		fmt.Sprintf("created invoice %s, total %s", invoice.InvoiceNumber, total.String()), creatorUserID)
	s.Emit(events.TopicInvoiceCreated, invoice.InvoiceID, invoice)
	s.LogInfo(ctx, "Invoice created", slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", total.String()))
	return &invoice, nil
}

// PostInvoice records the receivable: debit accounts receivable for the
// total, credit revenue for the subtotal and tax payable for the tax.
func (s *invoiceService) PostInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, invoice.InvoiceNumber, invoice.Status)
	}

	receivable, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.ReceivableAccountCode)
	if err != nil {
		return nil, fmt.Errorf("accounts receivable account: %w", err)
	}
	revenue, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.RevenueAccountCode)
	if err != nil {
		return nil, fmt.Errorf("revenue account: %w", err)
	}

	lines := []dto.JournalLineRequest{
		{AccountID: receivable.AccountID, Debit: invoice.Total, Description: fmt.Sprintf("Invoice %s", invoice.InvoiceNumber)},
		{AccountID: revenue.AccountID, Credit: invoice.Subtotal, Description: fmt.Sprintf("Invoice %s revenue", invoice.InvoiceNumber)},
	}
	if invoice.TotalTax.IsPositive() {
		taxPayable, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.TaxPayableAccountCode)
		if err != nil {
			return nil, fmt.Errorf("tax payable account: %w", err)
		}
		lines = append(lines, dto.JournalLineRequest{
			AccountID:   taxPayable.AccountID,
			Credit:      invoice.TotalTax,
			Description: fmt.Sprintf("Invoice %s tax", invoice.InvoiceNumber),
		})
	}

	entry, err := s.postJournal(ctx, fmt.Sprintf("Invoice %s posted", invoice.InvoiceNumber), lines, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice.Status = domain.InvoiceSent
	invoice.JournalEntryID = entry.JournalID
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update posted invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("%w: journal posted but invoice update failed: %v", apperrors.ErrInternal, err)
	}

	s.RecordAudit(ctx, "invoice.posted", invoice.InvoiceID,
		fmt.Sprintf("posted invoice %s via journal %s", invoice.InvoiceNumber, entry.JournalID), userID)
	s.LogInfo(ctx, "Invoice posted", slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("journal_id", entry.JournalID))
	return invoice, nil
}

// RecordPayment settles part of the amount due. A payment exceeding the
// amount due is rejected and leaves the invoice untouched.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}
	amount := s.Cfg.Round(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: invoice %s is cancelled", ErrInvoiceNotOpen, invoice.InvoiceNumber)
	}
	if amount.Sub(invoice.AmountDue).GreaterThan(s.Cfg.Tolerance) {
		return nil, fmt.Errorf("%w: amount %s, due %s", ErrOverpayment, amount.String(), invoice.AmountDue.String())
	}

	cash, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.CashAccountCode)
	if err != nil {
		return nil, fmt.Errorf("cash account: %w", err)
	}
	receivable, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.ReceivableAccountCode)
	if err != nil {
		return nil, fmt.Errorf("accounts receivable account: %w", err)
	}

	entry, err := s.postJournal(ctx,
		fmt.Sprintf("Payment on invoice %s", invoice.InvoiceNumber),
		[]dto.JournalLineRequest{
			{AccountID: cash.AccountID, Debit: amount, Description: req.Reference},
			{AccountID: receivable.AccountID, Credit: amount, Description: req.Reference},
		}, userID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		Amount:         amount,
		Method:         req.Method,
		Reference:      req.Reference,
		Date:           date,
		JournalEntryID: entry.JournalID,
	}

	now := time.Now().UTC()
	invoice.Payments = append(invoice.Payments, payment)
	invoice.AmountPaid = s.Cfg.Round(invoice.AmountPaid.Add(amount))
	invoice.AmountDue = s.Cfg.Round(invoice.Total.Sub(invoice.AmountPaid))
	if invoice.AmountDue.IsNegative() {
		invoice.AmountDue = decimal.Zero
	}
	if s.Cfg.WithinTolerance(invoice.AmountDue) {
		invoice.AmountDue = decimal.Zero
		invoice.Status = domain.InvoicePaid
	}
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice after payment", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("%w: payment posted but invoice update failed: %v", apperrors.ErrInternal, err)
	}

	s.RecordAudit(ctx, "payment.recorded", invoice.InvoiceID,
		fmt.Sprintf("payment of %s on invoice %s", amount.String(), invoice.InvoiceNumber), userID)
	s.Emit(events.TopicPaymentRecorded, invoice.InvoiceID, payment)
	s.LogInfo(ctx, "Payment recorded", slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("amount", amount.String()), slog.String("status", string(invoice.Status)))
	return &payment, nil
}

// CancelInvoice cancels a draft or unpaid sent invoice, reversing its
// receivable posting when one exists.
func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string, reason string, userID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft && invoice.Status != domain.InvoiceSent {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, invoice.InvoiceNumber, invoice.Status)
	}
	if invoice.AmountPaid.IsPositive() {
		return nil, fmt.Errorf("%w: invoice %s has recorded payments", apperrors.ErrConflict, invoice.InvoiceNumber)
	}

	if invoice.JournalEntryID != "" {
		if _, err := s.journalSvc.ReverseEntry(ctx, invoice.JournalEntryID, reason, userID); err != nil {
			return nil, fmt.Errorf("failed to reverse invoice posting: %w", err)
		}
	}

	now := time.Now().UTC()
	invoice.Status = domain.InvoiceCancelled
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update cancelled invoice: %w", err)
	}

	s.RecordAudit(ctx, "invoice.cancelled", invoice.InvoiceID,
		fmt.Sprintf("cancelled invoice %s: %s", invoice.InvoiceNumber, reason), userID)
	s.LogInfo(ctx, "Invoice cancelled", slog.String("invoice_number", invoice.InvoiceNumber))
	return invoice, nil
}

// GetInvoiceByID retrieves an invoice with items and payments.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// ListInvoices returns all invoices ordered by number.
func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoices(ctx)
}

// postJournal creates and immediately posts a balanced entry through
// the journal engine.
func (s *invoiceService) postJournal(ctx context.Context, description string, lines []dto.JournalLineRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateJournalEntryRequest{
		Description: description,
		Date:        time.Now().UTC(),
		Lines:       lines,
	}, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	posted, err := s.journalSvc.PostEntry(ctx, entry.JournalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}
	return posted, nil
}
