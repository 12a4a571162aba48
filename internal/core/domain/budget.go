package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetAlertLevel classifies a utilization alert.
type BudgetAlertLevel string

const (
	AlertWarning  BudgetAlertLevel = "WARNING"
	AlertCritical BudgetAlertLevel = "CRITICAL"
)

// BudgetLine tracks one account's budgeted amount against actual spend.
type BudgetLine struct {
	AccountID          string          `json:"accountID"`
	Budgeted           decimal.Decimal `json:"budgeted"`
	Spent              decimal.Decimal `json:"spent"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
}

// Budget holds target lines for a named period.
type Budget struct {
	BudgetID              string          `json:"budgetID"`
	Name                  string          `json:"name"`
	Period                string          `json:"period"`
	Lines                 []BudgetLine    `json:"lines"`
	TotalBudgeted         decimal.Decimal `json:"totalBudgeted"`
	TotalSpent            decimal.Decimal `json:"totalSpent"`
	UtilizationPercentage decimal.Decimal `json:"utilizationPercentage"`
	AuditFields
}

// BudgetAlert is emitted when utilization crosses a configured threshold.
// Alerts are level-triggered: every update above the threshold re-fires.
type BudgetAlert struct {
	BudgetID    string           `json:"budgetID"`
	BudgetName  string           `json:"budgetName"`
	Level       BudgetAlertLevel `json:"level"`
	Utilization decimal.Decimal  `json:"utilization"`
	Message     string           `json:"message"`
	RaisedAt    time.Time        `json:"raisedAt"`
}
