package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus indicates the lifecycle state of an expense.
type ExpenseStatus string

const (
	ExpenseDraft    ExpenseStatus = "DRAFT"
	ExpenseApproved ExpenseStatus = "APPROVED"
)

// Expense is a recorded cost against an expense account. Approval is
// one-way and posts the journal entry identified by JournalEntryID.
type Expense struct {
	ExpenseID      string          `json:"expenseID"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	AccountID      string          `json:"accountID"`
	Taxable        bool            `json:"taxable"`
	ExpenseDate    time.Time       `json:"expenseDate"`
	Status         ExpenseStatus   `json:"status"`
	JournalEntryID string          `json:"journalEntryID,omitempty"`
	ApprovedBy     string          `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time      `json:"approvedAt,omitempty"`
	AuditFields
}
