package services

import (
	"context"
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

// cashFlowService buckets inflow/outflow records by year-month and
// computes the point-in-time cash position. The position's ending
// balance is read live from the registry's cash account, which is an
// independent view of cash and may diverge from the record sums.
type cashFlowService struct {
	BaseService
	cashFlowRepo portsrepo.CashFlowRepository
	accountSvc   portssvc.AccountSvcFacade
}

// NewCashFlowService creates the cash flow ledger.
func NewCashFlowService(repo portsrepo.CashFlowRepository, accountSvc portssvc.AccountSvcFacade, base BaseService) portssvc.CashFlowSvcFacade {
	return &cashFlowService{BaseService: base, cashFlowRepo: repo, accountSvc: accountSvc}
}

var _ portssvc.CashFlowSvcFacade = (*cashFlowService)(nil)

// RecordCashFlow appends one immutable record under its year-month bucket.
func (s *cashFlowService) RecordCashFlow(ctx context.Context, req dto.RecordCashFlowRequest, creatorUserID string) (*domain.CashFlowRecord, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}
	amount := s.Cfg.Round(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: cash flow amount must be positive", apperrors.ErrValidation)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	balance := amount
	if req.Type == domain.Outflow {
		balance = amount.Neg()
	}

	now := time.Now().UTC()
	record := domain.CashFlowRecord{
		RecordID:    uuid.NewString(),
		Amount:      amount,
		Type:        req.Type,
		Category:    req.Category,
		Balance:     balance,
		Description: req.Description,
		Date:        date,
		BucketKey:   date.Format("2006-01"),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.cashFlowRepo.SaveRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save cash flow record")
		return nil, fmt.Errorf("failed to save cash flow record: %w", err)
	}

	s.RecordAudit(ctx, "cashflow.recorded", record.RecordID,
		fmt.Sprintf("%s %s of %s (%s)", record.Type, record.Category, amount.String(), record.BucketKey), creatorUserID)
	s.Emit(events.TopicCashFlowRecorded, record.RecordID, record)
	s.LogDebug(ctx, "Cash flow recorded", slog.String("record_id", record.RecordID),
		slog.String("bucket", record.BucketKey))
	return &record, nil
}

// CashPosition sums category balances over records dated at or before
// asOf and reads the ending balance from the configured cash account.
func (s *cashFlowService) CashPosition(ctx context.Context, asOf time.Time) (*domain.CashPosition, error) {
	records, err := s.cashFlowRepo.ListRecordsThrough(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash flow records: %w", err)
	}

	position := &domain.CashPosition{
		AsOf:          asOf,
		OperatingCash: decimal.Zero,
		InvestingCash: decimal.Zero,
		FinancingCash: decimal.Zero,
	}
	for _, record := range records {
		switch record.Category {
		case domain.Operating:
			position.OperatingCash = position.OperatingCash.Add(record.Balance)
		case domain.Investing:
			position.InvestingCash = position.InvestingCash.Add(record.Balance)
		case domain.Financing:
			position.FinancingCash = position.FinancingCash.Add(record.Balance)
		}
	}
	position.OperatingCash = s.Cfg.Round(position.OperatingCash)
	position.InvestingCash = s.Cfg.Round(position.InvestingCash)
	position.FinancingCash = s.Cfg.Round(position.FinancingCash)
	position.NetCashFlow = s.Cfg.Round(position.OperatingCash.Add(position.InvestingCash).Add(position.FinancingCash))

	cashAccount, err := s.accountSvc.GetAccountByCode(ctx, s.Cfg.CashAccountCode)
	if err != nil {
		return nil, fmt.Errorf("cash account: %w", err)
	}
	position.EndingBalance = s.Cfg.Round(cashAccount.Balance())

	s.LogDebug(ctx, "Cash position computed", slog.String("net", position.NetCashFlow.String()),
		slog.String("ending_balance", position.EndingBalance.String()))
	return position, nil
}

// ListCashFlows returns records with from <= date <= to.
func (s *cashFlowService) ListCashFlows(ctx context.Context, from, to time.Time) ([]domain.CashFlowRecord, error) {
	return s.cashFlowRepo.ListRecordsBetween(ctx, from, to)
}
