package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowType classifies a record as money in or money out.
type CashFlowType string

const (
	Inflow  CashFlowType = "INFLOW"
	Outflow CashFlowType = "OUTFLOW"
)

// CashFlowCategory buckets flows for the cash position statement.
type CashFlowCategory string

const (
	Operating CashFlowCategory = "OPERATING"
	Investing CashFlowCategory = "INVESTING"
	Financing CashFlowCategory = "FINANCING"
)

// CashFlowRecord is an immutable inflow/outflow observation, bucketed by
// year-month. Balance carries the signed amount (+inflow, -outflow).
type CashFlowRecord struct {
	RecordID    string           `json:"recordID"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        CashFlowType     `json:"type"`
	Category    CashFlowCategory `json:"category"`
	Balance     decimal.Decimal  `json:"balance"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	BucketKey   string           `json:"bucketKey"` // YYYY-MM
	AuditFields
}

// CashPosition summarises flows up to a point in time. EndingBalance is
// read live from the designated cash account in the registry and is not
// derived from the cash-flow records; the two views can diverge and are
// reconciled by the caller.
type CashPosition struct {
	AsOf          time.Time       `json:"asOf"`
	OperatingCash decimal.Decimal `json:"operatingCash"`
	InvestingCash decimal.Decimal `json:"investingCash"`
	FinancingCash decimal.Decimal `json:"financingCash"`
	NetCashFlow   decimal.Decimal `json:"netCashFlow"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
}
