package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit line of a new journal entry.
// Exactly one of Debit/Credit must be positive.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" validate:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a draft entry.
type CreateJournalEntryRequest struct {
	Description string               `json:"description" validate:"required"`
	Date        time.Time            `json:"date"`
	Lines       []JournalLineRequest `json:"lines" validate:"required,min=2,dive"`
}

// ListJournalEntriesParams defines filters for listing journal entries.
type ListJournalEntriesParams struct {
	Status    string    `json:"status"` // Optional: DRAFT, POSTED or REVERSED
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	AccountID string    `json:"accountID"` // Optional: entries touching this account
}
