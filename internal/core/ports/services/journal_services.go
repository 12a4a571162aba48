package services

import (
	"context"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/dto"
)

// ReversalResult pairs a reversed entry with the reversal that undid it.
type ReversalResult struct {
	Original *domain.JournalEntry
	Reversal *domain.JournalEntry
}

// JournalSvcFacade is the transactional core: the only mutation path
// for account balances.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, journalID string, reason string, userID string) (*ReversalResult, error)
	GetEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error)
}
