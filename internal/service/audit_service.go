package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/repository"
)

// AuditService exposes the append-only audit trail.
type AuditService interface {
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.AuditLogResponse, int64, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService creates the AuditService.
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.AuditLogResponse, int64, error) {
	logs, total, err := s.repo.Audit.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("audit list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *toAuditLogResponse(&logs[i]))
	}
	return result, total, nil
}

func toAuditLogResponse(entry *model.AuditLog) *dto.AuditLogResponse {
	resp := &dto.AuditLogResponse{
		ID:        entry.LogID,
		ActorID:   entry.ActorID,
		Action:    entry.Action,
		Entity:    entry.Entity,
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.EntityID != nil {
		resp.EntityID = *entry.EntityID
	}
	return resp
}

// writeAudit records a best-effort audit row outside any transaction.
// Failures are logged and swallowed; the audited mutation has already
// succeeded. Mutations needing an atomic trail (mark-done) write their
// row through the transaction-bound repository instead.
func writeAudit(ctx context.Context, repo repository.AuditRepository, logger *zap.Logger, actorID, action, entity, entityID, detail string) {
	entry := &model.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Detail:   detail,
	}
	if err := repo.Create(ctx, entry); err != nil {
		logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}
