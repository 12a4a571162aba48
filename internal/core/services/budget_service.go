package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
	portssvc "github.com/nimbuserp/accounting/internal/core/ports/services"
	"github.com/nimbuserp/accounting/internal/dto"
	"github.com/nimbuserp/accounting/internal/events"
)

var ErrUnknownBudgetLine = errors.New("no budget line for account")

// budgetService tracks budget lines against actual spend. Threshold
// alerts are level-triggered: every update above a threshold re-fires
// the alert, matching the observed behavior of the original system.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepository
	accountSvc portssvc.AccountSvcFacade
}

// NewBudgetService creates the budget tracker.
func NewBudgetService(repo portsrepo.BudgetRepository, accountSvc portssvc.AccountSvcFacade, base BaseService) portssvc.BudgetSvcFacade {
	return &budgetService{BaseService: base, budgetRepo: repo, accountSvc: accountSvc}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget stores a budget with zero spend and full variance.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	lines := make([]domain.BudgetLine, len(req.Lines))
	totalBudgeted := decimal.Zero
	for i, lr := range req.Lines {
		budgeted := s.Cfg.Round(lr.Budgeted)
		if !budgeted.IsPositive() {
			return nil, fmt.Errorf("%w: budgeted amount must be positive for account %s", apperrors.ErrValidation, lr.AccountID)
		}
		if _, err := s.accountSvc.GetAccountByID(ctx, lr.AccountID); err != nil {
			return nil, fmt.Errorf("budget line account: %w", err)
		}
		lines[i] = domain.BudgetLine{
			AccountID:          lr.AccountID,
			Budgeted:           budgeted,
			Spent:              decimal.Zero,
			Variance:           budgeted,
			VariancePercentage: decimal.NewFromInt(100),
		}
		totalBudgeted = s.Cfg.Round(totalBudgeted.Add(budgeted))
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:              uuid.NewString(),
		Name:                  req.Name,
		Period:                req.Period,
		Lines:                 lines,
		TotalBudgeted:         totalBudgeted,
		TotalSpent:            decimal.Zero,
		UtilizationPercentage: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget")
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.RecordAudit(ctx, "budget.created", budget.BudgetID,
		fmt.Sprintf("created budget %s (%s), total %s", budget.Name, budget.Period, totalBudgeted.String()), creatorUserID)
	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID), slog.String("name", budget.Name))
	return &budget, nil
}

// UpdateSpending adds delta to the matching line and recomputes
// variances and utilization, raising any threshold alerts.
func (s *budgetService) UpdateSpending(ctx context.Context, budgetID string, accountID string, delta decimal.Decimal, userID string) (*domain.Budget, []domain.BudgetAlert, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, nil, err
	}

	lineIdx := -1
	for i := range budget.Lines {
		if budget.Lines[i].AccountID == accountID {
			lineIdx = i
			break
		}
	}
	if lineIdx < 0 {
		return nil, nil, fmt.Errorf("%w: account %s in budget %s", ErrUnknownBudgetLine, accountID, budget.Name)
	}

	hundred := decimal.NewFromInt(100)
	line := &budget.Lines[lineIdx]
	line.Spent = s.Cfg.Round(line.Spent.Add(delta))
	line.Variance = s.Cfg.Round(line.Budgeted.Sub(line.Spent))
	line.VariancePercentage = s.Cfg.Round(line.Variance.Div(line.Budgeted).Mul(hundred))

	totalSpent := decimal.Zero
	for _, l := range budget.Lines {
		totalSpent = totalSpent.Add(l.Spent)
	}
	budget.TotalSpent = s.Cfg.Round(totalSpent)
	if budget.TotalBudgeted.IsPositive() {
		budget.UtilizationPercentage = s.Cfg.Round(budget.TotalSpent.Div(budget.TotalBudgeted).Mul(hundred))
	}

	now := time.Now().UTC()
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget spending", slog.String("budget_id", budgetID))
		return nil, nil, fmt.Errorf("failed to update budget: %w", err)
	}

	alerts := s.raiseAlerts(ctx, budget, now)

	s.RecordAudit(ctx, "budget.spending_updated", budget.BudgetID,
		fmt.Sprintf("spending on %s changed by %s, utilization %s%%", accountID, delta.String(), budget.UtilizationPercentage.String()), userID)
	s.LogInfo(ctx, "Budget spending updated", slog.String("budget_id", budget.BudgetID),
		slog.String("utilization_pct", budget.UtilizationPercentage.String()))
	return budget, alerts, nil
}

// raiseAlerts emits warning/critical alerts for the current utilization
// level. Both thresholds fire on every qualifying call, not only on the
// crossing update.
func (s *budgetService) raiseAlerts(ctx context.Context, budget *domain.Budget, now time.Time) []domain.BudgetAlert {
	alerts := make([]domain.BudgetAlert, 0, 2)
	if budget.UtilizationPercentage.GreaterThanOrEqual(s.Cfg.BudgetCriticalThreshold) {
		alerts = append(alerts, domain.BudgetAlert{
			BudgetID:    budget.BudgetID,
			BudgetName:  budget.Name,
			Level:       domain.AlertCritical,
			Utilization: budget.UtilizationPercentage,
			Message:     fmt.Sprintf("budget %s is at %s%% utilization", budget.Name, budget.UtilizationPercentage.String()),
			RaisedAt:    now,
		})
	} else if budget.UtilizationPercentage.GreaterThanOrEqual(s.Cfg.BudgetWarningThreshold) {
		alerts = append(alerts, domain.BudgetAlert{
			BudgetID:    budget.BudgetID,
			BudgetName:  budget.Name,
			Level:       domain.AlertWarning,
			Utilization: budget.UtilizationPercentage,
			Message:     fmt.Sprintf("budget %s is at %s%% utilization", budget.Name, budget.UtilizationPercentage.String()),
			RaisedAt:    now,
		})
	}

	for _, alert := range alerts {
		s.Emit(events.TopicBudgetAlert, budget.BudgetID, alert)
		s.LogInfo(ctx, "Budget alert raised", slog.String("budget_id", budget.BudgetID),
			slog.String("level", string(alert.Level)), slog.String("utilization_pct", alert.Utilization.String()))
	}
	return alerts
}

// GetBudgetByID retrieves a budget.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, budgetID)
}

// ListBudgets returns all budgets ordered by name.
func (s *budgetService) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgets(ctx)
}
