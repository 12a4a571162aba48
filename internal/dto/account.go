package dto

import (
	"github.com/nimbuserp/accounting/internal/core/domain"
)

// CreateAccountRequest defines the data needed to register a new account.
type CreateAccountRequest struct {
	Code         string                `json:"code" validate:"required"`
	Name         string                `json:"name" validate:"required"`
	AccountType  domain.AccountType    `json:"accountType" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubType      domain.AccountSubType `json:"subType"`
	CurrencyCode string                `json:"currencyCode"` // Defaults to the engine currency when empty
	Description  string                `json:"description"`
}

// ListAccountsParams defines filters for listing accounts.
type ListAccountsParams struct {
	AccountType domain.AccountType `json:"accountType"` // Optional filter
	ActiveOnly  bool               `json:"activeOnly"`
}
