// ledger-demo runs a self-contained scenario through the accounting
// engine and verifies the books stay balanced end to end. It exits
// non-zero on the first violated invariant.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nimbuserp/accounting/internal/audit"
	"github.com/nimbuserp/accounting/internal/core/domain"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
	"github.com/nimbuserp/accounting/internal/core/services"
	"github.com/nimbuserp/accounting/internal/dto"
	"github.com/nimbuserp/accounting/internal/events"
	"github.com/nimbuserp/accounting/internal/platform/config"
	"github.com/nimbuserp/accounting/internal/platform/logging"
	"github.com/nimbuserp/accounting/internal/repositories/memory"
)

const demoUser = "demo-user"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

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
	bus.SubscribeAll(events.HandlerFunc(func(evt events.Event) {
		logger.Info("Event published", slog.String("topic", evt.Topic), slog.String("entity_id", evt.EntityID))
	}))

	c := services.NewContainer(cfg, repos, trail, bus)
	ctx := logging.IntoCtx(context.Background(), logger)

	fatal := func(step string, err error) {
		logger.Error("Demo step failed", slog.String("step", step), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Chart of accounts.
	type seed struct {
		code, name string
		accType    domain.AccountType
		subType    domain.AccountSubType
	}
	seeds := []seed{
		{cfg.CashAccountCode, "Cash", domain.Asset, domain.SubTypeCash},
		{cfg.ReceivableAccountCode, "Accounts Receivable", domain.Asset, domain.SubTypeCurrentAsset},
		{cfg.InventoryAccountCode, "Inventory", domain.Asset, domain.SubTypeInventory},
		{cfg.PayableAccountCode, "Accounts Payable", domain.Liability, domain.SubTypeCurrentLiability},
		{cfg.TaxPayableAccountCode, "Tax Payable", domain.Liability, domain.SubTypeCurrentLiability},
		{"3000", "Owner Equity", domain.Equity, ""},
		{cfg.RevenueAccountCode, "Sales Revenue", domain.Revenue, domain.SubTypeOperatingRevenue},
		{"5100", "Rent Expense", domain.AccountTypeExpense, domain.SubTypeOperatingExpense},
	}
	accounts := make(map[string]*domain.Account, len(seeds))
	for _, sd := range seeds {
		account, err := c.Account.CreateAccount(ctx, dto.CreateAccountRequest{
			Code:        sd.code,
			Name:        sd.name,
			AccountType: sd.accType,
			SubType:     sd.subType,
		}, demoUser)
		if err != nil {
			fatal("create account "+sd.code, err)
		}
		accounts[sd.code] = account
	}

	// Capitalize the company.
	capital := decimal.NewFromInt(10000)
	entry, err := c.Journal.CreateEntry(ctx, dto.CreateJournalEntryRequest{
		Description: "Initial capital",
		Lines: []dto.JournalLineRequest{
			{AccountID: accounts[cfg.CashAccountCode].AccountID, Debit: capital},
			{AccountID: accounts["3000"].AccountID, Credit: capital},
		},
	}, demoUser)
	if err != nil {
		fatal("create capital entry", err)
	}
	if _, err := c.Journal.PostEntry(ctx, entry.JournalID, demoUser); err != nil {
		fatal("post capital entry", err)
	}

	// Invoice a customer: 2 x 100 at the default tax rate, then settle it.
	invoice, err := c.Invoice.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		Items: []dto.InvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		},
	}, demoUser)
	if err != nil {
		fatal("create invoice", err)
	}
	if _, err := c.Invoice.PostInvoice(ctx, invoice.InvoiceID, demoUser); err != nil {
		fatal("post invoice", err)
	}
	if _, err := c.Invoice.RecordPayment(ctx, invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount: invoice.Total,
		Method: "BANK_TRANSFER",
	}, demoUser); err != nil {
		fatal("record payment", err)
	}
	settled, err := c.Invoice.GetInvoiceByID(ctx, invoice.InvoiceID)
	if err != nil {
		fatal("reload invoice", err)
	}
	if settled.Status != domain.InvoicePaid {
		logger.Error("Invoice did not settle", slog.String("status", string(settled.Status)))
		os.Exit(1)
	}

	// Record and approve a taxable expense.
	expense, err := c.Expense.RecordExpense(ctx, dto.RecordExpenseRequest{
		Description: "Office rent",
		Amount:      decimal.NewFromInt(1000),
		AccountID:   accounts["5100"].AccountID,
		Taxable:     true,
	}, demoUser)
	if err != nil {
		fatal("record expense", err)
	}
	if _, err := c.Expense.ApproveExpense(ctx, expense.ExpenseID, demoUser); err != nil {
		fatal("approve expense", err)
	}

	// Track the rent budget; this drive crosses the critical threshold.
	budget, err := c.Budget.CreateBudget(ctx, dto.CreateBudgetRequest{
		Name:   "Operations",
		Period: "2026-Q1",
		Lines: []dto.BudgetLineRequest{
			{AccountID: accounts["5100"].AccountID, Budgeted: decimal.NewFromInt(1200)},
		},
	}, demoUser)
	if err != nil {
		fatal("create budget", err)
	}
	if _, _, err := c.Budget.UpdateSpending(ctx, budget.BudgetID, accounts["5100"].AccountID, expense.Total, demoUser); err != nil {
		fatal("update budget spending", err)
	}

	// Mirror the cash movements in the cash flow ledger.
	if _, err := c.CashFlow.RecordCashFlow(ctx, dto.RecordCashFlowRequest{
		Amount:      settled.Total,
		Type:        domain.Inflow,
		Category:    domain.Operating,
		Description: "Invoice settlement",
	}, demoUser); err != nil {
		fatal("record cash inflow", err)
	}

	// Verify the invariants the engine promises.
	asOf := time.Now().UTC()
	rows, err := c.Reporting.TrialBalance(ctx, asOf)
	if err != nil {
		fatal("trial balance", err)
	}
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		logger.Error("Trial balance out of balance",
			slog.String("debits", totalDebit.String()), slog.String("credits", totalCredit.String()))
		os.Exit(1)
	}

	sheet, err := c.Reporting.BalanceSheet(ctx, asOf)
	if err != nil {
		fatal("balance sheet", err)
	}
	if !sheet.IsBalanced {
		logger.Error("Accounting equation violated",
			slog.String("assets", sheet.TotalAssets.String()),
			slog.String("liabilities_and_equity", sheet.LiabilitiesAndEquity.String()))
		os.Exit(1)
	}

	position, err := c.CashFlow.CashPosition(ctx, asOf)
	if err != nil {
		fatal("cash position", err)
	}

	logger.Info("Demo scenario completed",
		slog.String("total_assets", sheet.TotalAssets.String()),
		slog.String("net_cash_flow", position.NetCashFlow.String()),
		slog.String("cash_ending_balance", position.EndingBalance.String()),
		slog.Int("audit_entries", trail.Len()))
}
