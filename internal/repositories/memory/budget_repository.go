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

// BudgetRepository is a mutex-guarded id→budget arena.
type BudgetRepository struct {
	mu      sync.RWMutex
	budgets map[string]domain.Budget
}

// NewBudgetRepository creates an empty budget arena.
func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{budgets: make(map[string]domain.Budget)}
}

var _ portsrepo.BudgetRepository = (*BudgetRepository)(nil)

// SaveBudget stores a new budget.
func (r *BudgetRepository) SaveBudget(_ context.Context, budget domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.budgets[budget.BudgetID]; exists {
		return fmt.Errorf("budget %s: %w", budget.BudgetID, apperrors.ErrDuplicate)
	}
	r.budgets[budget.BudgetID] = cloneBudget(budget)
	return nil
}

// FindBudgetByID returns a copy of the budget or ErrNotFound.
func (r *BudgetRepository) FindBudgetByID(_ context.Context, budgetID string) (*domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	budget, ok := r.budgets[budgetID]
	if !ok {
		return nil, fmt.Errorf("budget %s: %w", budgetID, apperrors.ErrNotFound)
	}
	clone := cloneBudget(budget)
	return &clone, nil
}

// UpdateBudget overwrites an existing budget.
func (r *BudgetRepository) UpdateBudget(_ context.Context, budget domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.budgets[budget.BudgetID]; !ok {
		return fmt.Errorf("budget %s: %w", budget.BudgetID, apperrors.ErrNotFound)
	}
	r.budgets[budget.BudgetID] = cloneBudget(budget)
	return nil
}

// ListBudgets returns all budgets ordered by name.
func (r *BudgetRepository) ListBudgets(_ context.Context) ([]domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Budget, 0, len(r.budgets))
	for _, budget := range r.budgets {
		out = append(out, cloneBudget(budget))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func cloneBudget(budget domain.Budget) domain.Budget {
	lines := make([]domain.BudgetLine, len(budget.Lines))
	copy(lines, budget.Lines)
	budget.Lines = lines
	return budget
}
