package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// BalanceSheet reports financial position as of a date.
type BalanceSheet struct {
	AsOf                 time.Time       `json:"asOf"`
	CurrentAssets        []AccountAmount `json:"currentAssets"`
	FixedAssets          []AccountAmount `json:"fixedAssets"`
	CurrentLiabilities   []AccountAmount `json:"currentLiabilities"`
	LongTermLiabilities  []AccountAmount `json:"longTermLiabilities"`
	Equity               []AccountAmount `json:"equity"`
	TotalAssets          decimal.Decimal `json:"totalAssets"`
	TotalLiabilities     decimal.Decimal `json:"totalLiabilities"`
	TotalEquity          decimal.Decimal `json:"totalEquity"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilitiesAndEquity"`
	IsBalanced           bool            `json:"isBalanced"`
}

// IncomeStatement reports operating results as of a date.
type IncomeStatement struct {
	AsOf              time.Time       `json:"asOf"`
	OperatingRevenue  decimal.Decimal `json:"operatingRevenue"`
	OtherRevenue      decimal.Decimal `json:"otherRevenue"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	CostOfGoodsSold   decimal.Decimal `json:"costOfGoodsSold"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	OperatingExpenses decimal.Decimal `json:"operatingExpenses"`
	OperatingIncome   decimal.Decimal `json:"operatingIncome"`
	OtherExpenses     decimal.Decimal `json:"otherExpenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
}

// LiquidityRatios measure ability to meet short-term obligations.
type LiquidityRatios struct {
	CurrentRatio decimal.Decimal `json:"currentRatio"`
	QuickRatio   decimal.Decimal `json:"quickRatio"`
	CashRatio    decimal.Decimal `json:"cashRatio"`
}

// ProfitabilityRatios measure return relative to assets, equity and revenue.
type ProfitabilityRatios struct {
	ReturnOnAssets decimal.Decimal `json:"returnOnAssets"`
	ReturnOnEquity decimal.Decimal `json:"returnOnEquity"`
	NetMargin      decimal.Decimal `json:"netMargin"`
}

// EfficiencyRatios measure how productively assets are employed.
type EfficiencyRatios struct {
	AssetTurnover     decimal.Decimal `json:"assetTurnover"`
	InventoryTurnover decimal.Decimal `json:"inventoryTurnover"`
}

// LeverageRatios measure reliance on debt financing.
type LeverageRatios struct {
	DebtRatio    decimal.Decimal `json:"debtRatio"`
	EquityRatio  decimal.Decimal `json:"equityRatio"`
	DebtToEquity decimal.Decimal `json:"debtToEquity"`
}

// FinancialRatios groups the derived ratio families.
type FinancialRatios struct {
	AsOf          time.Time           `json:"asOf"`
	Liquidity     LiquidityRatios     `json:"liquidity"`
	Profitability ProfitabilityRatios `json:"profitability"`
	Efficiency    EfficiencyRatios    `json:"efficiency"`
	Leverage      LeverageRatios      `json:"leverage"`
}
