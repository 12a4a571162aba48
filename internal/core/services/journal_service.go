package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
	portssvc "github.com/nimbuserp/accounting/internal/core/ports/services"
	"github.com/nimbuserp/accounting/internal/dto"
	"github.com/nimbuserp/accounting/internal/events"
)

var (
	ErrEntryUnbalanced = errors.New("journal entry debits and credits do not balance")
	ErrEntryMinLines   = errors.New("journal entry must have at least two lines")
	ErrAccountNotFound = errors.New("account not found")
	ErrAlreadyPosted   = errors.New("journal entry is not in draft status")
	ErrNotPosted       = errors.New("journal entry must be posted to be reversed")
	ErrAlreadyReversed = errors.New("journal entry has already been reversed")
)

// journalService is the transactional core. postMu serialises all
// post/reverse operations so concurrent postings touching overlapping
// accounts cannot interleave their balance updates.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	postMu      sync.Mutex
}

// NewJournalService creates the journal engine.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, base BaseService) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: base,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines normalises request lines, rounding each side and checking
// that exactly one side of every line is positive.
func (s *journalService) buildLines(reqLines []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		debit := s.Cfg.Round(lr.Debit)
		credit := s.Cfg.Round(lr.Credit)
		if debit.IsNegative() || credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i)
		}
		if debit.IsPositive() == credit.IsPositive() {
			return nil, fmt.Errorf("%w: line %d must have exactly one of debit or credit set", apperrors.ErrValidation, i)
		}
		lines[i] = domain.JournalLine{
			AccountID:   lr.AccountID,
			Debit:       debit,
			Credit:      credit,
			Description: lr.Description,
		}
	}
	return lines, nil
}

// validateBalance enforces the double-entry invariant: at least two
// lines and equal debit/credit totals.
func (s *journalService) validateBalance(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, ErrEntryMinLines
	}

	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	totalDebit = s.Cfg.Round(totalDebit)
	totalCredit = s.Cfg.Round(totalCredit)

	if !totalDebit.Equal(totalCredit) {
		return totalDebit, totalCredit, fmt.Errorf("%w: debits %s, credits %s",
			ErrEntryUnbalanced, totalDebit.String(), totalCredit.String())
	}
	return totalDebit, totalCredit, nil
}

// CreateEntry validates and stores a new entry in draft status. No
// account balance is touched until the entry is posted.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	lines, err := s.buildLines(req.Lines)
	if err != nil {
		return nil, err
	}
	totalDebit, totalCredit, err := s.validateBalance(lines)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		JournalID:   uuid.NewString(),
		Description: req.Description,
		JournalDate: date,
		Lines:       lines,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.RecordAudit(ctx, "journal.created", entry.JournalID,
		fmt.Sprintf("created draft entry: %s", entry.Description), creatorUserID)
	s.LogInfo(ctx, "Journal entry created", slog.String("journal_id", entry.JournalID),
		slog.String("total", totalDebit.String()))
	return &entry, nil
}

// PostEntry applies a draft entry to the account registry and marks it
// posted. The entry posts in full or not at all.
func (s *journalService) PostEntry(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	s.postMu.Lock()
	defer s.postMu.Unlock()
	return s.postEntryLocked(ctx, journalID, userID)
}

// postEntryLocked is PostEntry without lock acquisition; ReverseEntry
// calls it while already holding postMu.
func (s *journalService) postEntryLocked(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: status is %s", ErrAlreadyPosted, entry.Status)
	}

	deltas, err := s.collectPostingDeltas(ctx, entry.Lines)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.ApplyPostings(ctx, deltas); err != nil {
		s.LogError(ctx, err, "Failed to apply postings", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to apply postings: %w", err)
	}

	now := time.Now().UTC()
	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = userID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to persist posted entry", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("%w: posting applied but entry update failed: %v", apperrors.ErrInternal, err)
	}

	s.RecordAudit(ctx, "journal.posted", entry.JournalID,
		fmt.Sprintf("posted entry: %s", entry.Description), userID)
	s.Emit(events.TopicJournalPosted, entry.JournalID, *entry)
	s.LogInfo(ctx, "Journal entry posted", slog.String("journal_id", entry.JournalID),
		slog.Int("line_count", len(entry.Lines)))
	return entry, nil
}

// collectPostingDeltas verifies every referenced account exists and is
// active, then folds lines into per-account balance increments.
func (s *journalService) collectPostingDeltas(ctx context.Context, lines []domain.JournalLine) (map[string]portsrepo.PostingDelta, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	deltas := make(map[string]portsrepo.PostingDelta)
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, line.AccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s", ErrAccountClosed, account.Code)
		}
		delta := deltas[line.AccountID]
		delta.Debit = delta.Debit.Add(line.Debit)
		delta.Credit = delta.Credit.Add(line.Credit)
		deltas[line.AccountID] = delta
	}
	return deltas, nil
}

// ReverseEntry builds an inverse entry (debits and credits swapped),
// posts it immediately and marks the original reversed. Both entries
// remain queryable.
func (s *journalService) ReverseEntry(ctx context.Context, journalID string, reason string, userID string) (*portssvc.ReversalResult, error) {
	s.postMu.Lock()
	defer s.postMu.Unlock()

	original, err := s.journalRepo.FindEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: entry %s", ErrAlreadyReversed, journalID)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotPosted, original.Status)
	}

	reverseLines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		reverseLines[i] = domain.JournalLine{
			AccountID:   line.AccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
		}
	}

	now := time.Now().UTC()
	reversal := domain.JournalEntry{
		JournalID:         uuid.NewString(),
		Description:       fmt.Sprintf("Reversal of: %s", original.Description),
		JournalDate:       now,
		Lines:             reverseLines,
		TotalDebit:        original.TotalCredit,
		TotalCredit:       original.TotalDebit,
		Status:            domain.Draft,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, reversal); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	posted, err := s.postEntryLocked(ctx, reversal.JournalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to post reversal entry: %w", err)
	}

	original.Status = domain.Reversed
	original.ReversedBy = &posted.JournalID
	original.LastUpdatedAt = now
	original.LastUpdatedBy = userID
	if err := s.journalRepo.UpdateEntry(ctx, *original); err != nil {
		s.LogError(ctx, err, "Failed to mark original entry reversed", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("%w: reversal posted but original update failed: %v", apperrors.ErrInternal, err)
	}

	s.RecordAudit(ctx, "journal.reversed", original.JournalID,
		fmt.Sprintf("reversed entry (%s): %s", reason, original.Description), userID)
	s.Emit(events.TopicJournalReversed, original.JournalID, portssvc.ReversalResult{Original: original, Reversal: posted})
	s.LogInfo(ctx, "Journal entry reversed", slog.String("journal_id", original.JournalID),
		slog.String("reversal_id", posted.JournalID), slog.String("reason", reason))
	return &portssvc.ReversalResult{Original: original, Reversal: posted}, nil
}

// GetEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, journalID)
}

// ListEntries lists entries with optional status/date/account filters.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	out := make([]domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if params.Status != "" && string(entry.Status) != params.Status {
			continue
		}
		if !params.From.IsZero() && entry.JournalDate.Before(params.From) {
			continue
		}
		if !params.To.IsZero() && entry.JournalDate.After(params.To) {
			continue
		}
		if params.AccountID != "" && !entryTouchesAccount(entry, params.AccountID) {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

func entryTouchesAccount(entry domain.JournalEntry, accountID string) bool {
	for _, line := range entry.Lines {
		if line.AccountID == accountID {
			return true
		}
	}
	return false
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
