package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nimbuserp/accounting/internal/core/domain"
	portssvc "github.com/nimbuserp/accounting/internal/core/ports/services"
	"github.com/nimbuserp/accounting/internal/dto"
)

// reportingService derives financial statements and ratio groups from
// account registry balances. It is a read-only consumer of registry
// state and never posts.
type reportingService struct {
	BaseService
	accountSvc portssvc.AccountSvcFacade
}

// NewReportingService creates the financial analyzer.
func NewReportingService(accountSvc portssvc.AccountSvcFacade, base BaseService) portssvc.ReportingSvcFacade {
	return &reportingService{BaseService: base, accountSvc: accountSvc}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists per-account debit/credit totals; the two columns
// sum to the same figure when the books balance.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, dto.ListAccountsParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			Code:        account.Code,
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       s.Cfg.Round(account.DebitBalance),
			Credit:      s.Cfg.Round(account.CreditBalance),
		})
	}

	s.LogDebug(ctx, "Trial balance generated", slog.Int("row_count", len(rows)),
		slog.String("as_of", asOf.Format(time.RFC3339)))
	return rows, nil
}

// BalanceSheet groups asset/liability/equity balances and checks the
// accounting equation within the rounding tolerance.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, dto.ListAccountsParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	sheet := &domain.BalanceSheet{AsOf: asOf}
	totalAssets := decimal.Zero
	totalLiabilities := decimal.Zero
	totalEquity := decimal.Zero

	for _, account := range accounts {
		amount := s.Cfg.Round(account.Balance())
		entry := domain.AccountAmount{
			AccountID: account.AccountID,
			Code:      account.Code,
			Name:      account.Name,
			NetAmount: amount,
		}
		switch account.AccountType {
		case domain.Asset:
			totalAssets = totalAssets.Add(amount)
			if account.SubType == domain.SubTypeFixedAsset {
				sheet.FixedAssets = append(sheet.FixedAssets, entry)
			} else {
				// Cash, inventory and unclassified assets report as current.
				sheet.CurrentAssets = append(sheet.CurrentAssets, entry)
			}
		case domain.Liability:
			totalLiabilities = totalLiabilities.Add(amount)
			if account.SubType == domain.SubTypeLongTermLiability {
				sheet.LongTermLiabilities = append(sheet.LongTermLiabilities, entry)
			} else {
				sheet.CurrentLiabilities = append(sheet.CurrentLiabilities, entry)
			}
		case domain.Equity:
			totalEquity = totalEquity.Add(amount)
			sheet.Equity = append(sheet.Equity, entry)
		}
	}

	// Retained earnings: net income to date folds into the equity side
	// so the equation holds while revenue/expense accounts remain open.
	income, err := s.IncomeStatement(ctx, asOf)
	if err != nil {
		return nil, err
	}
	totalEquity = totalEquity.Add(income.NetIncome)

	sheet.TotalAssets = s.Cfg.Round(totalAssets)
	sheet.TotalLiabilities = s.Cfg.Round(totalLiabilities)
	sheet.TotalEquity = s.Cfg.Round(totalEquity)
	sheet.LiabilitiesAndEquity = s.Cfg.Round(sheet.TotalLiabilities.Add(sheet.TotalEquity))
	sheet.IsBalanced = s.Cfg.WithinTolerance(sheet.TotalAssets.Sub(sheet.LiabilitiesAndEquity))

	s.LogDebug(ctx, "Balance sheet generated", slog.String("total_assets", sheet.TotalAssets.String()),
		slog.Bool("balanced", sheet.IsBalanced))
	return sheet, nil
}

// IncomeStatement derives operating results from revenue and expense
// account balances.
func (s *reportingService) IncomeStatement(ctx context.Context, asOf time.Time) (*domain.IncomeStatement, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, dto.ListAccountsParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	stmt := &domain.IncomeStatement{AsOf: asOf}
	operatingRevenue := decimal.Zero
	otherRevenue := decimal.Zero
	cogs := decimal.Zero
	operatingExpenses := decimal.Zero
	otherExpenses := decimal.Zero

	for _, account := range accounts {
		amount := account.Balance()
		switch account.AccountType {
		case domain.Revenue:
			if account.SubType == domain.SubTypeOtherRevenue {
				otherRevenue = otherRevenue.Add(amount)
			} else {
				operatingRevenue = operatingRevenue.Add(amount)
			}
		case domain.AccountTypeExpense:
			switch account.SubType {
			case domain.SubTypeCOGS:
				cogs = cogs.Add(amount)
			case domain.SubTypeOtherExpense:
				otherExpenses = otherExpenses.Add(amount)
			default:
				operatingExpenses = operatingExpenses.Add(amount)
			}
		}
	}

	stmt.OperatingRevenue = s.Cfg.Round(operatingRevenue)
	stmt.OtherRevenue = s.Cfg.Round(otherRevenue)
	stmt.TotalRevenue = s.Cfg.Round(operatingRevenue.Add(otherRevenue))
	stmt.CostOfGoodsSold = s.Cfg.Round(cogs)
	stmt.GrossProfit = s.Cfg.Round(stmt.OperatingRevenue.Sub(stmt.CostOfGoodsSold))
	stmt.OperatingExpenses = s.Cfg.Round(operatingExpenses)
	stmt.OperatingIncome = s.Cfg.Round(stmt.GrossProfit.Sub(stmt.OperatingExpenses))
	stmt.OtherExpenses = s.Cfg.Round(otherExpenses)
	stmt.NetIncome = s.Cfg.Round(stmt.OperatingIncome.Add(stmt.OtherRevenue).Sub(stmt.OtherExpenses))

	s.LogDebug(ctx, "Income statement generated", slog.String("net_income", stmt.NetIncome.String()))
	return stmt, nil
}

// Ratios derives the liquidity, profitability, efficiency and leverage
// ratio groups. Denominators of zero are floored at 1.
func (s *reportingService) Ratios(ctx context.Context, asOf time.Time) (*domain.FinancialRatios, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, dto.ListAccountsParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	income, err := s.IncomeStatement(ctx, asOf)
	if err != nil {
		return nil, err
	}

	totalAssets := decimal.Zero
	currentAssets := decimal.Zero
	cash := decimal.Zero
	inventory := decimal.Zero
	totalLiabilities := decimal.Zero
	currentLiabilities := decimal.Zero
	equity := decimal.Zero

	for _, account := range accounts {
		amount := account.Balance()
		switch account.AccountType {
		case domain.Asset:
			totalAssets = totalAssets.Add(amount)
			if account.SubType != domain.SubTypeFixedAsset {
				currentAssets = currentAssets.Add(amount)
			}
			switch account.SubType {
			case domain.SubTypeCash:
				cash = cash.Add(amount)
			case domain.SubTypeInventory:
				inventory = inventory.Add(amount)
			}
		case domain.Liability:
			totalLiabilities = totalLiabilities.Add(amount)
			if account.SubType != domain.SubTypeLongTermLiability {
				currentLiabilities = currentLiabilities.Add(amount)
			}
		case domain.Equity:
			equity = equity.Add(amount)
		}
	}
	// Net income counts as equity for return/leverage purposes, same as
	// the balance sheet's retained-earnings fold.
	equity = equity.Add(income.NetIncome)

	ratios := &domain.FinancialRatios{
		AsOf: asOf,
		Liquidity: domain.LiquidityRatios{
			CurrentRatio: s.ratio(currentAssets, currentLiabilities),
			QuickRatio:   s.ratio(currentAssets.Sub(inventory), currentLiabilities),
			CashRatio:    s.ratio(cash, currentLiabilities),
		},
		Profitability: domain.ProfitabilityRatios{
			ReturnOnAssets: s.ratio(income.NetIncome, totalAssets),
			ReturnOnEquity: s.ratio(income.NetIncome, equity),
			NetMargin:      s.ratio(income.NetIncome, income.TotalRevenue),
		},
		Efficiency: domain.EfficiencyRatios{
			AssetTurnover:     s.ratio(income.TotalRevenue, totalAssets),
			InventoryTurnover: s.ratio(income.CostOfGoodsSold, inventory),
		},
		Leverage: domain.LeverageRatios{
			DebtRatio:    s.ratio(totalLiabilities, totalAssets),
			EquityRatio:  s.ratio(equity, totalAssets),
			DebtToEquity: s.ratio(totalLiabilities, equity),
		},
	}

	s.LogDebug(ctx, "Financial ratios generated", slog.String("as_of", asOf.Format(time.RFC3339)))
	return ratios, nil
}

// ratio divides with a denominator floor of 1 when the denominator is zero.
func (s *reportingService) ratio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		denominator = decimal.NewFromInt(1)
	}
	return s.Cfg.Round(numerator.Div(denominator))
}
