package services

import (
	"context"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/dto"
)

// ExpenseSvcFacade records and approves expenses, posting through the
// journal engine on approval.
type ExpenseSvcFacade interface {
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, creatorUserID string) (*domain.Expense, error)
	ApproveExpense(ctx context.Context, expenseID string, approverUserID string) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}
