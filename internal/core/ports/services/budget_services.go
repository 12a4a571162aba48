package services

import (
	"context"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetSvcFacade tracks budget lines against actual spend and raises
// utilization alerts.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)
	// UpdateSpending adds delta to the matching line's spent amount and
	// returns the recomputed budget plus any alerts raised by this call.
	UpdateSpending(ctx context.Context, budgetID string, accountID string, delta decimal.Decimal, userID string) (*domain.Budget, []domain.BudgetAlert, error)
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
}
