// Package services defines the facades the accounting core exposes to
// callers. Implementations live in internal/core/services.
package services

import (
	"context"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade owns the chart of accounts and derived balances.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	CloseAccount(ctx context.Context, accountID string, reason string, userID string) (*domain.Account, error)
}
