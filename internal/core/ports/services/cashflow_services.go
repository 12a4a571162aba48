package services

import (
	"context"
	"time"

	"github.com/nimbuserp/accounting/internal/core/domain"
	"github.com/nimbuserp/accounting/internal/dto"
)

// CashFlowSvcFacade buckets inflow/outflow records and computes the
// point-in-time cash position.
type CashFlowSvcFacade interface {
	RecordCashFlow(ctx context.Context, req dto.RecordCashFlowRequest, creatorUserID string) (*domain.CashFlowRecord, error)
	CashPosition(ctx context.Context, asOf time.Time) (*domain.CashPosition, error)
	ListCashFlows(ctx context.Context, from, to time.Time) ([]domain.CashFlowRecord, error)
}
