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

var ErrAlreadyApproved = errors.New("expense has already been approved")

// expenseService records draft expenses and posts them through the
// journal engine on approval. Approval is one-way.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	accountSvc  portssvc.AccountSvcFacade
	journalSvc  portssvc.JournalSvcFacade
}

// NewExpenseService creates the expense subsystem.
func NewExpenseService(repo portsrepo.ExpenseRepository, accountSvc portssvc.AccountSvcFacade, journalSvc portssvc.JournalSvcFacade, base BaseService) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: base,
		expenseRepo: repo,
		accountSvc:  accountSvc,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// RecordExpense stores a draft expense, computing tax when taxable.
func (s *expenseService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}
	amount := s.Cfg.Round(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	// The expense account must exist and be an expense-type account.
	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("expense account: %w", err)
	}
	if account.AccountType != domain.AccountTypeExpense {
		return nil, fmt.Errorf("%w: account %s is %s, expected EXPENSE", apperrors.ErrValidation, account.Code, account.AccountType)
	}

	tax := decimal.Zero
	if req.Taxable {
		rate := s.Cfg.DefaultTaxRate
		if req.TaxRate != nil {
			rate = *req.TaxRate
		}
		tax = s.Cfg.Round(amount.Mul(rate))
	}
	total := s.Cfg.Round(amount.Add(tax))

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Description: req.Description,
		Amount:      amount,
		Tax:         tax,
		Total:       total,
		AccountID:   req.AccountID,
		Taxable:     req.Taxable,
		ExpenseDate: date,
		Status:      domain.ExpenseDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.RecordAudit(ctx, "expense.recorded", expense.ExpenseID,
		fmt.Sprintf("recorded expense %s, total %s", expense.Description, total.String()), creatorUserID)
	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", expense.ExpenseID),
		slog.String("total", total.String()))
	return &expense, nil
}

// ApproveExpense posts the expense journal and transitions to approved.
// There is no un-approve operation.
func (s *expenseService) ApproveExpense(ctx context.Context, expenseID string, approverUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpenseDraft {
		return nil, fmt.Errorf("%w: expense %s", ErrAlreadyApproved, expenseID)
	}

	payable, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.PayableAccountCode)
	if err != nil {
		return nil, fmt.Errorf("payable account: %w", err)
	}

	lines := []dto.JournalLineRequest{
		{AccountID: expense.AccountID, Debit: expense.Total, Description: expense.Description},
		{AccountID: payable.AccountID, Credit: expense.Amount, Description: expense.Description},
	}
	if expense.Tax.IsPositive() {
		taxPayable, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.TaxPayableAccountCode)
		if err != nil {
			return nil, fmt.Errorf("tax payable account: %w", err)
		}
		lines = append(lines, dto.JournalLineRequest{
			AccountID:   taxPayable.AccountID,
			Credit:      expense.Tax,
			Description: fmt.Sprintf("%s tax", expense.Description),
		})
	}

	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateJournalEntryRequest{
		Description: fmt.Sprintf("Expense approved: %s", expense.Description),
		Date:        expense.ExpenseDate,
		Lines:       lines,
	}, approverUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense journal: %w", err)
	}
	posted, err := s.journalSvc.PostEntry(ctx, entry.JournalID, approverUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to post expense journal: %w", err)
	}

	now := time.Now().UTC()
	expense.Status = domain.ExpenseApproved
	expense.JournalEntryID = posted.JournalID
	expense.ApprovedBy = approverUserID
	expense.ApprovedAt = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = approverUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update approved expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("%w: journal posted but expense update failed: %v", apperrors.ErrInternal, err)
	}

	s.RecordAudit(ctx, "expense.approved", expense.ExpenseID,
		fmt.Sprintf("approved expense %s via journal %s", expense.Description, posted.JournalID), approverUserID)
	s.Emit(events.TopicExpenseApproved, expense.ExpenseID, *expense)
	s.LogInfo(ctx, "Expense approved", slog.String("expense_id", expense.ExpenseID),
		slog.String("journal_id", posted.JournalID))
	return expense, nil
}

// GetExpenseByID retrieves an expense.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

// ListExpenses returns all expenses ordered by creation time.
func (s *expenseService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.expenseRepo.ListExpenses(ctx)
}
