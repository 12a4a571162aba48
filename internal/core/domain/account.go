package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset              AccountType = "ASSET"
	Liability          AccountType = "LIABILITY"
	Equity             AccountType = "EQUITY"
	Revenue            AccountType = "REVENUE"
	AccountTypeExpense AccountType = "EXPENSE"
)

// AccountSubType refines the account type for reporting purposes
// (current vs fixed assets, operating vs other revenue, and so on).
type AccountSubType string

const (
	SubTypeCurrentAsset      AccountSubType = "CURRENT_ASSET"
	SubTypeFixedAsset        AccountSubType = "FIXED_ASSET"
	SubTypeInventory         AccountSubType = "INVENTORY"
	SubTypeCash              AccountSubType = "CASH"
	SubTypeCurrentLiability  AccountSubType = "CURRENT_LIABILITY"
	SubTypeLongTermLiability AccountSubType = "LONG_TERM_LIABILITY"
	SubTypeOperatingRevenue  AccountSubType = "OPERATING_REVENUE"
	SubTypeOtherRevenue      AccountSubType = "OTHER_REVENUE"
	SubTypeCOGS              AccountSubType = "COST_OF_GOODS_SOLD"
	SubTypeOperatingExpense  AccountSubType = "OPERATING_EXPENSE"
	SubTypeOtherExpense      AccountSubType = "OTHER_EXPENSE"
)

// Account represents a financial account within the chart of accounts.
// DebitBalance and CreditBalance are running totals maintained exclusively
// by journal postings; Balance() derives the net per the account type.
type Account struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"` // Unique user-facing code (e.g. "1000")
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	SubType       AccountSubType  `json:"subType"`
	CurrencyCode  string          `json:"currencyCode"`
	Description   string          `json:"description"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	IsActive      bool            `json:"isActive"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`
	ClosedReason  string          `json:"closedReason,omitempty"`
	AuditFields
}

// Balance returns the net balance per the normal-balance convention:
// debit minus credit for asset and expense accounts, credit minus debit
// for liability, equity and revenue accounts.
func (a *Account) Balance() decimal.Decimal {
	switch a.AccountType {
	case Asset, AccountTypeExpense:
		return a.DebitBalance.Sub(a.CreditBalance)
	default:
		return a.CreditBalance.Sub(a.DebitBalance)
	}
}
