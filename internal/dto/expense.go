package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordExpenseRequest defines the data needed to record a draft expense.
type RecordExpenseRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	AccountID   string          `json:"accountID" validate:"required"`
	Taxable     bool            `json:"taxable"`
	// TaxRate overrides the engine default when the expense is taxable.
	TaxRate *decimal.Decimal `json:"taxRate,omitempty"`
	Date    time.Time        `json:"date"`
}
