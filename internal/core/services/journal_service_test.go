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

func balancedEntryRequest(debitAccountID, creditAccountID, amount string) dto.CreateJournalEntryRequest {
	amt := decimal.RequireFromString(amount)
	return dto.CreateJournalEntryRequest{
		Description: "Test entry",
		Lines: []dto.JournalLineRequest{
			{AccountID: debitAccountID, Debit: amt},
			{AccountID: creditAccountID, Credit: amt},
		},
	}
}

func TestCreateEntry_DraftDoesNotTouchBalances(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	entry, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, equity.AccountID, "500"), testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.Draft, entry.Status)
	assert.True(t, entry.TotalDebit.Equal(decimal.RequireFromString("500")))
	assert.True(t, entry.TotalDebit.Equal(entry.TotalCredit))

	requireBalance(t, c, cash.AccountID, "0")
	requireBalance(t, c, equity.AccountID, "0")
}

func TestCreateEntry_RejectsUnbalanced(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	_, err := c.Journal.CreateEntry(context.Background(), dto.CreateJournalEntryRequest{
		Description: "Unbalanced",
		Lines: []dto.JournalLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.RequireFromString("100")},
			{AccountID: equity.AccountID, Credit: decimal.RequireFromString("99")},
		},
	}, testUserID)
	require.ErrorIs(t, err, services.ErrEntryUnbalanced)
}

func TestCreateEntry_RejectsFewerThanTwoLines(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)

	_, err := c.Journal.CreateEntry(context.Background(), dto.CreateJournalEntryRequest{
		Description: "Single line",
		Lines: []dto.JournalLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.RequireFromString("100")},
		},
	}, testUserID)
	require.ErrorIs(t, err, services.ErrEntryMinLines)
}

func TestCreateEntry_RejectsLineWithBothSides(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	_, err := c.Journal.CreateEntry(context.Background(), dto.CreateJournalEntryRequest{
		Description: "Both sides",
		Lines: []dto.JournalLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.RequireFromString("50"), Credit: decimal.RequireFromString("50")},
			{AccountID: equity.AccountID, Credit: decimal.RequireFromString("0")},
		},
	}, testUserID)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPostEntry_AppliesBalances(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	entry, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, equity.AccountID, "1500.50"), testUserID)
	require.NoError(t, err)

	posted, err := c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, posted.Status)
	require.NotNil(t, posted.PostedAt)
	assert.Equal(t, testUserID, posted.PostedBy)

	// Debit increases an asset, credit increases equity.
	requireBalance(t, c, cash.AccountID, "1500.5")
	requireBalance(t, c, equity.AccountID, "1500.5")
}

func TestPostEntry_RejectsDoublePosting(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	entry, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, equity.AccountID, "100"), testUserID)
	require.NoError(t, err)
	_, err = c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
	require.NoError(t, err)

	_, err = c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
	require.ErrorIs(t, err, services.ErrAlreadyPosted)
	requireBalance(t, c, cash.AccountID, "100")
}

func TestPostEntry_RejectsUnknownAccount(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)

	entry, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, "missing-account", "100"), testUserID)
	require.NoError(t, err)

	_, err = c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
	require.ErrorIs(t, err, services.ErrAccountNotFound)

	// The failed posting must not leave a partial application behind.
	requireBalance(t, c, cash.AccountID, "0")
	stored, err := c.Journal.GetEntryByID(context.Background(), entry.JournalID)
	require.NoError(t, err)
	assert.Equal(t, domain.Draft, stored.Status)
}

func TestPostEntry_RejectsClosedAccount(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	entry, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, equity.AccountID, "100"), testUserID)
	require.NoError(t, err)

	_, err = c.Account.CloseAccount(context.Background(), equity.AccountID, "no longer used", testUserID)
	require.NoError(t, err)

	_, err = c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
	require.ErrorIs(t, err, services.ErrAccountClosed)
}

func TestReverseEntry_RestoresBalances(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	entry, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, equity.AccountID, "250"), testUserID)
	require.NoError(t, err)
	_, err = c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
	require.NoError(t, err)

	result, err := c.Journal.ReverseEntry(context.Background(), entry.JournalID, "data entry mistake", testUserID)
	require.NoError(t, err)

	assert.Equal(t, domain.Reversed, result.Original.Status)
	require.NotNil(t, result.Original.ReversedBy)
	assert.Equal(t, result.Reversal.JournalID, *result.Original.ReversedBy)
	assert.Equal(t, domain.Posted, result.Reversal.Status)
	require.NotNil(t, result.Reversal.OriginalJournalID)
	assert.Equal(t, entry.JournalID, *result.Reversal.OriginalJournalID)

	// Reversal swaps every line's debit and credit.
	require.Len(t, result.Reversal.Lines, 2)
	assert.True(t, result.Reversal.Lines[0].Credit.Equal(decimal.RequireFromString("250")))
	assert.True(t, result.Reversal.Lines[1].Debit.Equal(decimal.RequireFromString("250")))

	requireBalance(t, c, cash.AccountID, "0")
	requireBalance(t, c, equity.AccountID, "0")

	// Both entries remain queryable.
	_, err = c.Journal.GetEntryByID(context.Background(), result.Reversal.JournalID)
	require.NoError(t, err)
}

func TestReverseEntry_RejectsDraftAndDoubleReversal(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")

	entry, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, equity.AccountID, "100"), testUserID)
	require.NoError(t, err)

	_, err = c.Journal.ReverseEntry(context.Background(), entry.JournalID, "too early", testUserID)
	require.ErrorIs(t, err, services.ErrNotPosted)

	_, err = c.Journal.PostEntry(context.Background(), entry.JournalID, testUserID)
	require.NoError(t, err)
	_, err = c.Journal.ReverseEntry(context.Background(), entry.JournalID, "mistake", testUserID)
	require.NoError(t, err)

	_, err = c.Journal.ReverseEntry(context.Background(), entry.JournalID, "again", testUserID)
	require.ErrorIs(t, err, services.ErrAlreadyReversed)
}

func TestListEntries_Filters(t *testing.T) {
	c, _ := newTestContainer(t)
	cash := seedAccount(t, c, "1000", "Cash", domain.Asset, domain.SubTypeCash)
	equity := seedAccount(t, c, "3000", "Owner Equity", domain.Equity, "")
	revenue := seedAccount(t, c, "4000", "Sales", domain.Revenue, domain.SubTypeOperatingRevenue)

	first, err := c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, equity.AccountID, "100"), testUserID)
	require.NoError(t, err)
	_, err = c.Journal.PostEntry(context.Background(), first.JournalID, testUserID)
	require.NoError(t, err)
	_, err = c.Journal.CreateEntry(context.Background(),
		balancedEntryRequest(cash.AccountID, revenue.AccountID, "50"), testUserID)
	require.NoError(t, err)

	posted, err := c.Journal.ListEntries(context.Background(), dto.ListJournalEntriesParams{Status: string(domain.Posted)})
	require.NoError(t, err)
	require.Len(t, posted, 1)
	assert.Equal(t, first.JournalID, posted[0].JournalID)

	touching, err := c.Journal.ListEntries(context.Background(), dto.ListJournalEntriesParams{AccountID: revenue.AccountID})
	require.NoError(t, err)
	require.Len(t, touching, 1)

	all, err := c.Journal.ListEntries(context.Background(), dto.ListJournalEntriesParams{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
