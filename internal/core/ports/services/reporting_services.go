package services

import (
	"context"
	"time"

	"github.com/nimbuserp/accounting/internal/core/domain"
)

// ReportingSvcFacade derives financial statements and ratios from
// account registry state.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
	IncomeStatement(ctx context.Context, asOf time.Time) (*domain.IncomeStatement, error)
	Ratios(ctx context.Context, asOf time.Time) (*domain.FinancialRatios, error)
}
