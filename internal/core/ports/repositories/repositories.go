// Package repositories defines the storage ports the accounting core
// writes through. Durability is delegated to whatever adapter backs
// these interfaces; the module ships an in-memory implementation.
package repositories

import (
	"context"
	"time"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingDelta is the net debit/credit increment a posted journal entry
// applies to one account.
type PostingDelta struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// AccountRepository stores the chart of accounts and running balances.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	// ApplyPostings atomically increments running balances for every
	// account in the map; no partial application is observable.
	ApplyPostings(ctx context.Context, deltas map[string]PostingDelta) error
}

// JournalRepository stores journal entries and their lines.
type JournalRepository interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	FindEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
}

// InvoiceRepository stores invoices with embedded items and payments.
type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// ExpenseRepository stores expenses.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}

// BudgetRepository stores budgets.
type BudgetRepository interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
}

// CashFlowRepository stores immutable cash-flow records bucketed by year-month.
type CashFlowRepository interface {
	SaveRecord(ctx context.Context, record domain.CashFlowRecord) error
	// ListRecordsThrough returns every record dated at or before asOf.
	ListRecordsThrough(ctx context.Context, asOf time.Time) ([]domain.CashFlowRecord, error)
	ListRecordsBetween(ctx context.Context, from, to time.Time) ([]domain.CashFlowRecord, error)
}

// RepositoryProvider bundles all repositories for container wiring.
type RepositoryProvider struct {
	AccountRepo  AccountRepository
	JournalRepo  JournalRepository
	InvoiceRepo  InvoiceRepository
	ExpenseRepo  ExpenseRepository
	BudgetRepo   BudgetRepository
	CashFlowRepo CashFlowRepository
}
