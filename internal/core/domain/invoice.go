package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// InvoiceItem is a billable line on an invoice. TaxRate overrides the
// invoice-level rate when set.
type InvoiceItem struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	TaxRate     *decimal.Decimal `json:"taxRate,omitempty"`
	LineTotal   decimal.Decimal  `json:"lineTotal"`
	Tax         decimal.Decimal  `json:"tax"`
}

// Payment records a settlement against an invoice.
type Payment struct {
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
	// JournalEntryID links to the cash/receivable posting made for this payment.
	JournalEntryID string `json:"journalEntryID"`
}

// Invoice aggregates items and payments. AmountDue is always
// Total - AmountPaid, never negative.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	CustomerName   string          `json:"customerName"`
	Items          []InvoiceItem   `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalTax       decimal.Decimal `json:"totalTax"`
	Total          decimal.Decimal `json:"total"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	AmountDue      decimal.Decimal `json:"amountDue"`
	Status         InvoiceStatus   `json:"status"`
	CurrencyCode   string          `json:"currencyCode"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	Payments       []Payment       `json:"payments"`
	JournalEntryID string          `json:"journalEntryID,omitempty"`
	AuditFields
}
