package services

import (
	"github.com/nimbuserp/accounting/internal/audit"
	portsrepo "github.com/nimbuserp/accounting/internal/core/ports/repositories"
	portssvc "github.com/nimbuserp/accounting/internal/core/ports/services"
	"github.com/nimbuserp/accounting/internal/events"
	"github.com/nimbuserp/accounting/internal/platform/config"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Account   portssvc.AccountSvcFacade
	Journal   portssvc.JournalSvcFacade
	Invoice   portssvc.InvoiceSvcFacade
	Expense   portssvc.ExpenseSvcFacade
	Budget    portssvc.BudgetSvcFacade
	CashFlow  portssvc.CashFlowSvcFacade
	Reporting portssvc.ReportingSvcFacade

	Trail *audit.Trail
	Bus   *events.Bus
}

// NewContainer creates a new service container with properly initialized
// dependencies. The audit trail and event bus are shared by every service.
func NewContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, trail *audit.Trail, bus *events.Bus) *Container {
	base := newBaseService(cfg, trail, bus)

	container := &Container{Trail: trail, Bus: bus}

	// Account and journal services come first since the subsystems above
	// them post through the journal engine.
	container.Account = NewAccountService(repos.AccountRepo, base)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, base)

	container.Invoice = NewInvoiceService(repos.InvoiceRepo, container.Account, container.Journal, base)
	container.Expense = NewExpenseService(repos.ExpenseRepo, container.Account, container.Journal, base)
	container.Budget = NewBudgetService(repos.BudgetRepo, container.Account, base)
	container.CashFlow = NewCashFlowService(repos.CashFlowRepo, container.Account, base)
	container.Reporting = NewReportingService(container.Account, base)

	return container
}
