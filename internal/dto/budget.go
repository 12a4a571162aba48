package dto

import (
	"github.com/shopspring/decimal"
)

// BudgetLineRequest targets one account with a budgeted amount.
type BudgetLineRequest struct {
	AccountID string          `json:"accountID" validate:"required"`
	Budgeted  decimal.Decimal `json:"budgeted" validate:"required"`
}

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Name   string              `json:"name" validate:"required"`
	Period string              `json:"period" validate:"required"` // e.g. "2026-Q1"
	Lines  []BudgetLineRequest `json:"lines" validate:"required,min=1,dive"`
}
