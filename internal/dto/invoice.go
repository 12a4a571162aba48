package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one billable line of a new invoice.
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"required"`
	// TaxRate overrides the invoice-level rate for this line when set.
	TaxRate *decimal.Decimal `json:"taxRate,omitempty"`
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
type CreateInvoiceRequest struct {
	CustomerName string               `json:"customerName"`
	Items        []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	// TaxRate overrides the engine default for all lines without their own rate.
	TaxRate      *decimal.Decimal `json:"taxRate,omitempty"`
	DueDate      *time.Time       `json:"dueDate,omitempty"`
	CurrencyCode string           `json:"currencyCode"`
}

// RecordPaymentRequest defines the data needed to settle part of an invoice.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
}
