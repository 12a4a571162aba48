package dto

import (
	"time"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCashFlowRequest defines the data needed to record one flow.
type RecordCashFlowRequest struct {
	Amount      decimal.Decimal         `json:"amount" validate:"required"`
	Type        domain.CashFlowType     `json:"type" validate:"required,oneof=INFLOW OUTFLOW"`
	Category    domain.CashFlowCategory `json:"category" validate:"required,oneof=OPERATING INVESTING FINANCING"`
	Description string                  `json:"description"`
	Date        time.Time               `json:"date"`
}
