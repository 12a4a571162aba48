package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/core/services"
)

// reportingBooks seeds a chart of accounts and posts a small set of
// transactions covering every statement section.
type reportingBooks struct {
	cash, receivable, inventory, equipment       *domain.Account
	payable, loan, equity, revenue, cogs, rental *domain.Account
}

func seedReportingBooks(t *testing.T, c *services.Container) reportingBooks {
	t.Helper()
	b := reportingBooks{
		cash:       seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash),
		receivable: seedAccount(t, c, "1100", "Accounts Receivable", domain.Asset, domain.SubTypeCurrentAsset),
		inventory:  seedAccount(t, c, "1200", "Inventory", domain.Asset, domain.SubTypeInventory),
		equipment:  seedAccount(t, c, "1500", "Equipment", domain.Asset, domain.SubTypeFixedAsset),
		payable:    seedAccount(t, c, "2000", "Accounts Payable", domain.Liability, domain.SubTypeCurrentLiability),
		loan:       seedAccount(t, c, "2500", "Bank Loan", domain.Liability, domain.SubTypeLongTermLiability),
		equity:     seedAccount(t, c, "3000", "Owner Equity", domain.Equity, ""),
		revenue:    seedAccount(t, c, "4000", "Sales Revenue", domain.Revenue, domain.SubTypeOperatingRevenue),
		cogs:       seedAccount(t, c, "5000", "Cost of Goods Sold", domain.AccountTypeExpense, domain.SubTypeCOGS),
		rental:     seedAccount(t, c, "5100", "Rent Expense", domain.AccountTypeExpense, domain.SubTypeOperatingExpense),
	}

	post := func(debitID, creditID, amount string) {
		t.Helper()
		entry, err := c.Journal.CreateEntry(context.Background(),
			balancedEntryRequest(debitID, creditID, amount), testUserID)
		require.NoError(t, err)
		_, err = c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
		require.NoError(t, err)
	}

	post(b.cash.AccountID, b.equity.AccountID, "10000")      // capital injection
	post(b.inventory.AccountID, b.payable.AccountID, "1500") // stock purchase on credit
	post(b.receivable.AccountID, b.revenue.AccountID, "2000") // sale on credit
	post(b.cogs.AccountID, b.inventory.AccountID, "800")     // cost of the sale
	post(b.rental.AccountID, b.cash.AccountID, "300")        // rent paid
	post(b.equipment.AccountID, b.cash.AccountID, "4000")    // equipment purchase
	post(b.cash.AccountID, b.loan.AccountID, "2500")         // loan drawdown
	return b
}

func TestTrialBalance_ColumnsBalance(t *testing.T) {
	c, _ := newTestContainer(t)
	seedReportingBooks(t, c)

	rows, err := c.Reporting.TrialBalance(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, rows, 10)

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	assert.True(t, totalDebit.Equal(totalCredit),
		"trial balance out of balance: debits %s, credits %s", totalDebit, totalCredit)
	assert.True(t, totalDebit.Equal(decimal.NewFromInt(21100)))
}

func TestBalanceSheet_EquationHolds(t *testing.T) {
	c, _ := newTestContainer(t)
	seedReportingBooks(t, c)

	sheet, err := c.Reporting.BalanceSheet(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, sheet.TotalAssets.Equal(decimal.NewFromInt(14900)), "assets %s", sheet.TotalAssets)
	assert.True(t, sheet.TotalLiabilities.Equal(decimal.NewFromInt(4000)), "liabilities %s", sheet.TotalLiabilities)
	// Equity accounts plus retained net income.
	assert.True(t, sheet.TotalEquity.Equal(decimal.NewFromInt(10900)), "equity %s", sheet.TotalEquity)
	assert.True(t, sheet.LiabilitiesAndEquity.Equal(sheet.TotalAssets))
	assert.True(t, sheet.IsBalanced)

	assert.Len(t, sheet.CurrentAssets, 3)
	assert.Len(t, sheet.FixedAssets, 1)
	assert.Len(t, sheet.CurrentLiabilities, 1)
	assert.Len(t, sheet.LongTermLiabilities, 1)
	assert.Len(t, sheet.Equity, 1)
}

func TestIncomeStatement_Sections(t *testing.T) {
	c, _ := newTestContainer(t)
	seedReportingBooks(t, c)

	stmt, err := c.Reporting.IncomeStatement(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, stmt.TotalRevenue.Equal(decimal.NewFromInt(2000)))
	assert.True(t, stmt.CostOfGoodsSold.Equal(decimal.NewFromInt(800)))
	assert.True(t, stmt.GrossProfit.Equal(decimal.NewFromInt(1200)))
	assert.True(t, stmt.OperatingExpenses.Equal(decimal.NewFromInt(300)))
	assert.True(t, stmt.OperatingIncome.Equal(decimal.NewFromInt(900)))
	assert.True(t, stmt.NetIncome.Equal(decimal.NewFromInt(900)))
}

func TestRatios_DerivedFromBooks(t *testing.T) {
	c, _ := newTestContainer(t)
	seedReportingBooks(t, c)

	ratios, err := c.Reporting.Ratios(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	// Current assets 10900 over current liabilities 1500.
	assert.True(t, ratios.Liquidity.CurrentRatio.Equal(decimal.RequireFromString("7.27")),
		"current ratio %s", ratios.Liquidity.CurrentRatio)
	assert.True(t, ratios.Liquidity.QuickRatio.Equal(decimal.RequireFromString("6.8")),
		"quick ratio %s", ratios.Liquidity.QuickRatio)
	assert.True(t, ratios.Profitability.NetMargin.Equal(decimal.RequireFromString("0.45")),
		"net margin %s", ratios.Profitability.NetMargin)
	assert.True(t, ratios.Efficiency.InventoryTurnover.Equal(decimal.RequireFromString("1.14")),
		"inventory turnover %s", ratios.Efficiency.InventoryTurnover)
	assert.True(t, ratios.Leverage.DebtToEquity.Equal(decimal.RequireFromString("0.37")),
		"debt to equity %s", ratios.Leverage.DebtToEquity)
}

func TestRatios_EmptyBooksDoNotDivideByZero(t *testing.T) {
	c, _ := newTestContainer(t)

	ratios, err := c.Reporting.Ratios(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	// Zero denominators are floored at 1, yielding zero ratios.
	assert.True(t, ratios.Liquidity.CurrentRatio.IsZero())
	assert.True(t, ratios.Profitability.ReturnOnAssets.IsZero())
	assert.True(t, ratios.Leverage.DebtToEquity.IsZero())
}
