package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalLine is a single debit or credit against one account.
// Exactly one of Debit/Credit is positive; lines are immutable once the
// parent entry is posted.
type JournalLine struct {
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. It is the only mutation path for account balances.
type JournalEntry struct {
	JournalID   string          `json:"journalID"`
	Description string          `json:"description"`
	JournalDate time.Time       `json:"journalDate"`
	Lines       []JournalLine   `json:"lines"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Status      JournalStatus   `json:"status"`
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	PostedBy    string          `json:"postedBy,omitempty"`
	// ReversedBy holds the id of the reversing entry once reversed;
	// OriginalJournalID points back the other way on the reversal itself.
	ReversedBy        *string `json:"reversedBy,omitempty"`
	OriginalJournalID *string `json:"originalJournalID,omitempty"`
	AuditFields
}
