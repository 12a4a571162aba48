package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
	portssvc "github.com/nimbuserp/accounting/internal/core/ports/services"
	"github.com/nimbuserp/accounting/internal/dto"
)

var (
	ErrDuplicateCode  = errors.New("account code already registered")
	ErrNonZeroBalance = errors.New("account balance must be zero to close")
	ErrAccountClosed  = errors.New("account is closed")
)

// accountService owns the chart of accounts. Balances are derived from
// the running debit/credit totals; postings arrive only through the
// journal service.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates the account registry service.
func NewAccountService(repo portsrepo.AccountRepository, base BaseService) portssvc.AccountSvcFacade {
	return &accountService{BaseService: base, accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account with a unique code, starting
// active at zero balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: code %s", ErrDuplicateCode, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.Cfg.DefaultCurrency
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Code:          req.Code,
		Name:          req.Name,
		AccountType:   req.AccountType,
		SubType:       req.SubType,
		CurrencyCode:  currency,
		Description:   req.Description,
		DebitBalance:  decimal.Zero,
		CreditBalance: decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: code %s", ErrDuplicateCode, req.Code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.RecordAudit(ctx, "account.created", account.AccountID,
		fmt.Sprintf("created account %s (%s)", account.Code, account.Name), creatorUserID)
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account by id.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByCode retrieves an account by its unique code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

// GetAccountsByIDs retrieves a batch of accounts keyed by id.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts lists accounts with optional type/active filters.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	out := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		if params.AccountType != "" && account.AccountType != params.AccountType {
			continue
		}
		if params.ActiveOnly && !account.IsActive {
			continue
		}
		out = append(out, account)
	}
	return out, nil
}

// GetBalance returns the derived net balance per the account's
// normal-balance convention.
func (s *accountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Cfg.Round(account.Balance()), nil
}

// CloseAccount deactivates an account. The balance must be within the
// rounding tolerance of zero; closing is irreversible.
func (s *accountService) CloseAccount(ctx context.Context, accountID string, reason string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrAccountClosed, accountID)
	}
	if !s.Cfg.WithinTolerance(account.Balance()) {
		return nil, fmt.Errorf("%w: account %s has balance %s", ErrNonZeroBalance, account.Code, account.Balance().String())
	}

	now := time.Now().UTC()
	account.IsActive = false
	account.ClosedAt = &now
	account.ClosedReason = reason
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to close account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to close account: %w", err)
	}

	s.RecordAudit(ctx, "account.closed", accountID,
		fmt.Sprintf("closed account %s: %s", account.Code, reason), userID)
	s.LogInfo(ctx, "Account closed", slog.String("account_id", accountID), slog.String("reason", reason))
	return account, nil
}
