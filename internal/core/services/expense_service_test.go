package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/core/services"
	"github.com/nimbuserp/accounting/internal/dto"
)

func TestRecordExpense_ComputesTax(t *testing.T) {
	c, cfg := newTestContainer(t)
	seedControlAccounts(t, c, cfg)
	rent := seedAccount(t, c, "5100", "Rent Expense", domain.AccountTypeExpense, domain.SubTypeOperatingExpense)

	expense, err := c.Expense.RecordExpense(context.Background(), dto.RecordExpenseRequest{
		Description: "Office rent",
		Amount:      decimal.NewFromInt(1000),
		AccountID:   rent.AccountID,
		Taxable:     true,
	}, testUserID)
	require.NoError(t, err)

	assert.Equal(t, domain.ExpenseDraft, expense.Status)
	assert.True(t, expense.Tax.Equal(decimal.NewFromInt(150)), "tax %s", expense.Tax)
	assert.True(t, expense.Total.Equal(decimal.NewFromInt(1150)), "total %s", expense.Total)

	// No journal posting until approval.
	requireBalance(t, c, rent.AccountID, "0")
}

func TestRecordExpense_NonTaxable(t *testing.T) {
	c, _ := newTestContainer(t)
	rent := seedAccount(t, c, "5100", "Rent Expense", domain.AccountTypeExpense, domain.SubTypeOperatingExpense)

	expense, err := c.Expense.RecordExpense(context.Background(), dto.RecordExpenseRequest{
		Description: "Office rent",
		Amount:      decimal.NewFromInt(1000),
		AccountID:   rent.AccountID,
	}, testUserID)
	require.NoError(t, err)
	assert.True(t, expense.Tax.IsZero())
	assert.True(t, expense.Total.Equal(decimal.NewFromInt(1000)))
}

func TestRecordExpense_RejectsNonExpenseAccount(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)

	_, err := c.Expense.RecordExpense(context.Background(), dto.RecordExpenseRequest{
		Description: "Misfiled",
		Amount:      decimal.NewFromInt(100),
		AccountID:   cash.AccountID,
	}, testUserID)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApproveExpense_PostsBalancedJournal(t *testing.T) {
	c, cfg := newTestContainer(t)
	accounts := seedControlAccounts(t, c, cfg)
	rent := seedAccount(t, c, "5100", "Rent Expense", domain.AccountTypeExpense, domain.SubTypeOperatingExpense)

	expense, err := c.Expense.RecordExpense(context.Background(), dto.RecordExpenseRequest{
		Description: "Office rent",
		Amount:      decimal.NewFromInt(1000),
		AccountID:   rent.AccountID,
		Taxable:     true,
	}, testUserID)
	require.NoError(t, err)

	approved, err := c.Expense.ApproveExpense(context.Background(), expense.ExpenseID, "user-approver")
	require.NoError(t, err)
	assert.Equal(t, domain.ExpenseApproved, approved.Status)
	assert.Equal(t, "user-approver", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	require.NotEmpty(t, approved.JournalEntryID)

	// Debit expense for the total, credit payable for the net amount and
	// tax payable for the tax.
	requireBalance(t, c, rent.AccountID, "1150")
	requireBalance(t, c, accounts.Payable.AccountID, "1000")
	requireBalance(t, c, accounts.TaxPayable.AccountID, "150")

	entry, err := c.Journal.GetEntryByID(context.Background(), approved.JournalEntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, entry.Status)
	assert.True(t, entry.TotalDebit.Equal(entry.TotalCredit))
}

func TestApproveExpense_RejectsSecondApproval(t *testing.T) {
	c, cfg := newTestContainer(t)
	seedControlAccounts(t, c, cfg)
	rent := seedAccount(t, c, "5100", "Rent Expense", domain.AccountTypeExpense, domain.SubTypeOperatingExpense)

	expense, err := c.Expense.RecordExpense(context.Background(), dto.RecordExpenseRequest{
		Description: "Office rent",
		Amount:      decimal.NewFromInt(500),
		AccountID:   rent.AccountID,
	}, testUserID)
	require.NoError(t, err)

	_, err = c.Expense.ApproveExpense(context.Background(), expense.ExpenseID, testUserID)
	require.NoError(t, err)
	_, err = c.Expense.ApproveExpense(context.Background(), expense.ExpenseID, testUserID)
	require.ErrorIs(t, err, services.ErrAlreadyApproved)

	// No double posting.
	requireBalance(t, c, rent.AccountID, "500")
}
