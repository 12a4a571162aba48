package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/core/services"
	"github.com/nimbuserp/accounting/internal/dto"
)

func createTestInvoice(t *testing.T, c *services.Container) *domain.Invoice {
	t.Helper()
	invoice, err := c.Invoice.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		Items: []dto.InvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		},
	}, testUserID)
	require.NoError(t, err)
	return invoice
}

func TestCreateInvoice_ComputesTotalsWithDefaultTax(t *testing.T) {
	c, _ := newTestContainer(t)

	// 2 x 100 at the default 15% rate: subtotal 200, tax 30, total 230.
	invoice := createTestInvoice(t, c)

	assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
	assert.Equal(t, domain.InvoiceDraft, invoice.Status)
	assert.True(t, invoice.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal %s", invoice.Subtotal)
	assert.True(t, invoice.TotalTax.Equal(decimal.NewFromInt(30)), "tax %s", invoice.TotalTax)
	assert.True(t, invoice.Total.Equal(decimal.NewFromInt(230)), "total %s", invoice.Total)
	assert.True(t, invoice.AmountDue.Equal(invoice.Total))
	assert.True(t, invoice.AmountPaid.IsZero())

	second := createTestInvoice(t, c)
	assert.Equal(t, "INV-000002", second.InvoiceNumber)
}

func TestCreateInvoice_ItemRateOverridesInvoiceRate(t *testing.T) {
	c, _ := newTestContainer(t)

	invoiceRate := decimal.RequireFromString("0.10")
	itemRate := decimal.RequireFromString("0.20")
	invoice, err := c.Invoice.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		TaxRate:      &invoiceRate,
		Items: []dto.InvoiceItemRequest{
			{Description: "Standard", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			{Description: "Luxury", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), TaxRate: &itemRate},
		},
	}, testUserID)
	require.NoError(t, err)

	// 100 at 10% plus 100 at 20%.
	assert.True(t, invoice.TotalTax.Equal(decimal.NewFromInt(30)), "tax %s", invoice.TotalTax)
	assert.True(t, invoice.Total.Equal(decimal.NewFromInt(230)), "total %s", invoice.Total)
}

func TestPostInvoice_PostsReceivableRevenueAndTax(t *testing.T) {
	c, cfg := newTestContainer(t)
	accounts := seedControlAccounts(t, c, cfg)
	invoice := createTestInvoice(t, c)

	posted, err := c.Invoice.PostInvoice(context.Background(), invoice.InvoiceID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceSent, posted.Status)
	require.NotEmpty(t, posted.JournalEntryID)

	requireBalance(t, c, accounts.Receivable.AccountID, "230")
	requireBalance(t, c, accounts.Revenue.AccountID, "200")
	requireBalance(t, c, accounts.TaxPayable.AccountID, "30")

	entry, err := c.Journal.GetEntryByID(context.Background(), posted.JournalEntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, entry.Status)
	assert.True(t, entry.TotalDebit.Equal(entry.TotalCredit))

	// A second posting of the same invoice is a conflict.
	_, err = c.Invoice.PostInvoice(context.Background(), invoice.InvoiceID, testUserID)
	require.Error(t, err)
}

func TestRecordPayment_PartialThenSettled(t *testing.T) {
	c, cfg := newTestContainer(t)
	accounts := seedControlAccounts(t, c, cfg)
	invoice := createTestInvoice(t, c)
	_, err := c.Invoice.PostInvoice(context.Background(), invoice.InvoiceID, testUserID)
	require.NoError(t, err)

	_, err = c.Invoice.RecordPayment(context.Background(), invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(150),
		Method: "BANK_TRANSFER",
	}, testUserID)
	require.NoError(t, err)

	partial, err := c.Invoice.GetInvoiceByID(context.Background(), invoice.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceSent, partial.Status)
	assert.True(t, partial.AmountPaid.Equal(decimal.NewFromInt(150)))
	assert.True(t, partial.AmountDue.Equal(decimal.NewFromInt(80)))

	requireBalance(t, c, accounts.Cash.AccountID, "150")
	requireBalance(t, c, accounts.Receivable.AccountID, "80")

	_, err = c.Invoice.RecordPayment(context.Background(), invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(80),
		Method: "BANK_TRANSFER",
	}, testUserID)
	require.NoError(t, err)

	settled, err := c.Invoice.GetInvoiceByID(context.Background(), invoice.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, settled.Status)
	assert.True(t, settled.AmountDue.IsZero())
	require.Len(t, settled.Payments, 2)

	requireBalance(t, c, accounts.Cash.AccountID, "230")
	requireBalance(t, c, accounts.Receivable.AccountID, "0")
}

func TestRecordPayment_RejectsOverpaymentUnchanged(t *testing.T) {
	c, cfg := newTestContainer(t)
	accounts := seedControlAccounts(t, c, cfg)
	invoice := createTestInvoice(t, c)
	_, err := c.Invoice.PostInvoice(context.Background(), invoice.InvoiceID, testUserID)
	require.NoError(t, err)

	_, err = c.Invoice.RecordPayment(context.Background(), invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(500),
		Method: "BANK_TRANSFER",
	}, testUserID)
	require.ErrorIs(t, err, services.ErrOverpayment)

	// Rejected payments leave the invoice and balances untouched.
	after, err := c.Invoice.GetInvoiceByID(context.Background(), invoice.InvoiceID)
	require.NoError(t, err)
	assert.True(t, after.AmountPaid.IsZero())
	assert.True(t, after.AmountDue.Equal(decimal.NewFromInt(230)))
	assert.Empty(t, after.Payments)
	requireBalance(t, c, accounts.Cash.AccountID, "0")
	requireBalance(t, c, accounts.Receivable.AccountID, "230")
}

func TestCancelInvoice_ReversesPostingWhenUnpaid(t *testing.T) {
	c, cfg := newTestContainer(t)
	accounts := seedControlAccounts(t, c, cfg)
	invoice := createTestInvoice(t, c)
	posted, err := c.Invoice.PostInvoice(context.Background(), invoice.InvoiceID, testUserID)
	require.NoError(t, err)

	cancelled, err := c.Invoice.CancelInvoice(context.Background(), invoice.InvoiceID, "customer withdrew", testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceCancelled, cancelled.Status)

	requireBalance(t, c, accounts.Receivable.AccountID, "0")
	requireBalance(t, c, accounts.Revenue.AccountID, "0")
	requireBalance(t, c, accounts.TaxPayable.AccountID, "0")

	entry, err := c.Journal.GetEntryByID(context.Background(), posted.JournalEntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Reversed, entry.Status)
}

func TestCancelInvoice_RejectsWithPayments(t *testing.T) {
	c, cfg := newTestContainer(t)
	seedControlAccounts(t, c, cfg)
	invoice := createTestInvoice(t, c)
	_, err := c.Invoice.PostInvoice(context.Background(), invoice.InvoiceID, testUserID)
	require.NoError(t, err)
	_, err = c.Invoice.RecordPayment(context.Background(), invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(50),
		Method: "CASH",
	}, testUserID)
	require.NoError(t, err)

	_, err = c.Invoice.CancelInvoice(context.Background(), invoice.InvoiceID, "too late", testUserID)
	require.Error(t, err)
}
