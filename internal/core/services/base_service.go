package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/nimbuserp/accounting/internal/apperrors"
	"github.com/nimbuserp/accounting/internal/audit"
	"github.com/nimbuserp/accounting/internal/events"
	"github.com/nimbuserp/accounting/internal/platform/config"
	"github.com/nimbuserp/accounting/internal/platform/logging"
)

// BaseService provides common functionality for all services: scoped
// logging, request validation, audit recording and event emission.
type BaseService struct {
	Cfg      *config.Config
	Validate *validator.Validate
	Trail    *audit.Trail
	Bus      *events.Bus
}

// newBaseService wires the shared collaborators every service embeds.
func newBaseService(cfg *config.Config, trail *audit.Trail, bus *events.Bus) BaseService {
	return BaseService{
		Cfg:      cfg,
		Validate: validator.New(),
		Trail:    trail,
		Bus:      bus,
	}
}

// GetLogger gets the logger from context or returns the default one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return logging.FromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ValidateRequest runs struct validation and normalises failures onto
// apperrors.ErrValidation so callers can match with errors.Is.
func (s *BaseService) ValidateRequest(req any) error {
	if err := s.Validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// RecordAudit appends one audit entry when a trail is configured.
func (s *BaseService) RecordAudit(ctx context.Context, action, entityID, description, actor string) {
	if s.Trail != nil {
		s.Trail.Record(ctx, action, entityID, description, actor)
	}
}

// Emit publishes an event when a bus is configured.
func (s *BaseService) Emit(topic, entityID string, payload any) {
	if s.Bus != nil {
		s.Bus.Publish(events.Event{Topic: topic, EntityID: entityID, Payload: payload})
	}
}
