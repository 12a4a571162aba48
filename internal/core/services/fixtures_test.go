package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nimbuserp/accounting/internal/audit"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
	"github.com/nimbuserp/accounting/internal/core/services"
	"github.com/nimbuserp/accounting/internal/dto"
	"github.com/nimbuserp/accounting/internal/events"
	"github.com/nimbuserp/accounting/internal/platform/config"
	"github.com/nimbuserp/accounting/internal/repositories/memory"
)

const testUserID = "user-test"

// newTestContainer wires a full service container over fresh in-memory
// repositories with the default configuration.
func newTestContainer(t *testing.T) (*services.Container, *config.Config) {
	t.Helper()
	cfg := config.Default()
	repos := &portsrepo.RepositoryProvider{
		AccountRepo:  memory.NewAccountRepository(),
		JournalRepo:  memory.NewJournalRepository(),
		InvoiceRepo:  memory.NewInvoiceRepository(),
		ExpenseRepo:  memory.NewExpenseRepository(),
		BudgetRepo:   memory.NewBudgetRepository(),
		CashFlowRepo: memory.NewCashFlowRepository(),
	}
	trail := audit.NewTrail(cfg.AuditLogCapacity, nil)
	bus := events.NewBus()
	return services.NewContainer(cfg, repos, trail, bus), cfg
}

func seedAccount(t *testing.T, c *services.Container, code, name string, accType domain.AccountType, subType domain.AccountSubType) *domain.Account {
	t.Helper()
	account, err := c.Account.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code:        code,
		Name:        name,
		AccountType: accType,
		SubType:     subType,
	}, testUserID)
	require.NoError(t, err)
	return account
}

// controlAccounts holds the accounts the invoice/expense/cash-flow
// subsystems post through, keyed for readable assertions.
type controlAccounts struct {
	Cash       *domain.Account
	Receivable *domain.Account
	Payable    *domain.Account
	TaxPayable *domain.Account
	Revenue    *domain.Account
}

func seedControlAccounts(t *testing.T, c *services.Container, cfg *config.Config) controlAccounts {
	t.Helper()
	return controlAccounts{
		Cash:       seedAccount(t, c, cfg.CashAccountCode, "Cash", domain.Asset, domain.SubTypeCash),
		Receivable: seedAccount(t, c, cfg.ReceivableAccountCode, "Accounts Receivable", domain.Asset, domain.SubTypeCurrentAsset),
		Payable:    seedAccount(t, c, cfg.PayableAccountCode, "Accounts Payable", domain.Liability, domain.SubTypeCurrentLiability),
		TaxPayable: seedAccount(t, c, cfg.TaxPayableAccountCode, "Tax Payable", domain.Liability, domain.SubTypeCurrentLiability),
		Revenue:    seedAccount(t, c, cfg.RevenueAccountCode, "Sales Revenue", domain.Revenue, domain.SubTypeOperatingRevenue),
	}
}

// requireBalance asserts the derived balance of an account matches want.
func requireBalance(t *testing.T, c *services.Container, accountID, want string) {
	t.Helper()
	balance, err := c.Account.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString(want)),
		"balance mismatch: got %s, want %s", balance.String(), want)
}
