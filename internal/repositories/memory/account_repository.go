// Package memory provides in-memory repository adapters. Durability is
// delegated to an external store per the engine's contract; these
// arenas keep the same port shapes a database adapter would implement.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
)

// AccountRepository is a mutex-guarded id→account arena with a code index.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	byCode   map[string]string // code -> accountID
}

// NewAccountRepository creates an empty account arena.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]domain.Account),
		byCode:   make(map[string]string),
	}
}

var _ portsrepo.AccountRepository = (*AccountRepository)(nil)

// SaveAccount stores a new account, enforcing code uniqueness.
func (r *AccountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountID]; exists {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
	}
	if _, exists := r.byCode[account.Code]; exists {
		return fmt.Errorf("account code %s: %w", account.Code, apperrors.ErrDuplicate)
	}
	r.accounts[account.AccountID] = account
	r.byCode[account.Code] = account.AccountID
	return nil
}

// FindAccountByID returns a copy of the account or ErrNotFound.
func (r *AccountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return &account, nil
}

// FindAccountByCode returns a copy of the account with the given code.
func (r *AccountRepository) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountID, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("account code %s: %w", code, apperrors.ErrNotFound)
	}
	account := r.accounts[accountID]
	return &account, nil
}

// FindAccountsByIDs returns copies of the accounts found; missing ids
// are simply absent from the result map.
func (r *AccountRepository) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := r.accounts[id]; ok {
			out[id] = account
		}
	}
	return out, nil
}

// ListAccounts returns all accounts ordered by code.
func (r *AccountRepository) ListAccounts(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// UpdateAccount overwrites an existing account.
func (r *AccountRepository) UpdateAccount(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.accounts[account.AccountID]
	if !ok {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrNotFound)
	}
	if existing.Code != account.Code {
		return fmt.Errorf("account code is immutable: %w", apperrors.ErrValidation)
	}
	r.accounts[account.AccountID] = account
	return nil
}

// ApplyPostings increments running balances for every account in the
// map under one lock acquisition; all-or-nothing.
func (r *AccountRepository) ApplyPostings(_ context.Context, deltas map[string]portsrepo.PostingDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Verify every account exists before touching any balance.
	for accountID := range deltas {
		if _, ok := r.accounts[accountID]; !ok {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
	}
	for accountID, delta := range deltas {
		account := r.accounts[accountID]
		account.DebitBalance = account.DebitBalance.Add(delta.Debit)
		account.CreditBalance = account.CreditBalance.Add(delta.Credit)
		r.accounts[accountID] = account
	}
	return nil
}
