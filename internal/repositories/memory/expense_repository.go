package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
)

// ExpenseRepository is a mutex-guarded id→expense arena.
type ExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]domain.Expense
}

// NewExpenseRepository creates an empty expense arena.
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{expenses: make(map[string]domain.Expense)}
}

var _ portsrepo.ExpenseRepository = (*ExpenseRepository)(nil)

// SaveExpense stores a new expense.
func (r *ExpenseRepository) SaveExpense(_ context.Context, expense domain.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.expenses[expense.ExpenseID]; exists {
		return fmt.Errorf("expense %s: %w", expense.ExpenseID, apperrors.ErrDuplicate)
	}
	r.expenses[expense.ExpenseID] = expense
	return nil
}

// FindExpenseByID returns a copy of the expense or ErrNotFound.
func (r *ExpenseRepository) FindExpenseByID(_ context.Context, expenseID string) (*domain.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	expense, ok := r.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return &expense, nil
}

// UpdateExpense overwrites an existing expense.
func (r *ExpenseRepository) UpdateExpense(_ context.Context, expense domain.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.expenses[expense.ExpenseID]; !ok {
		return fmt.Errorf("expense %s: %w", expense.ExpenseID, apperrors.ErrNotFound)
	}
	r.expenses[expense.ExpenseID] = expense
	return nil
}

// ListExpenses returns all expenses ordered by creation time.
func (r *ExpenseRepository) ListExpenses(_ context.Context) ([]domain.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Expense, 0, len(r.expenses))
	for _, expense := range r.expenses {
		out = append(out, expense)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ExpenseID < out[j].ExpenseID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
