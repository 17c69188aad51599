package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/models/response_models"
	"studiocrm/internal/repositories"
	"studiocrm/pkg/utils"
)

const recentAuditLimit = 50

// AuditServiceInterface is read only. Entries are written by the recorder
// inside the mutating services' transactions.
type AuditServiceInterface interface {
	ListAuditLogs(ctx context.Context, query request_models.AuditLogListQuery) (response_models.PagedResponse[response_models.AuditLogResponse], error)
	GetAuditLog(ctx context.Context, id uuid.UUID) (*response_models.AuditLogResponse, error)
	Recent(ctx context.Context) ([]response_models.AuditLogResponse, error)
	ByCreator(ctx context.Context, creatorID string) ([]response_models.AuditLogResponse, error)
}

type AuditService struct {
	auditRepo repositories.AuditLogRepository
}

func NewAuditService(auditRepo repositories.AuditLogRepository) AuditServiceInterface {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) ListAuditLogs(ctx context.Context, query request_models.AuditLogListQuery) (response_models.PagedResponse[response_models.AuditLogResponse], error) {
	var empty response_models.PagedResponse[response_models.AuditLogResponse]

	userID, err := parseOptionalUUID("user_id", query.UserID)
	if err != nil {
		return empty, err
	}
	page, pageSize, err := utils.NormalizePage(query.Page, query.PageSize)
	if err != nil {
		return empty, err
	}

	entries, total, err := s.auditRepo.List(ctx, repositories.AuditLogFilter{
		ActionType:  db_models.ActionType(strings.ToUpper(strings.TrimSpace(query.ActionType))),
		TargetModel: strings.TrimSpace(query.TargetModel),
		UserID:      userID,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return empty, translateErr(err)
	}

	return response_models.NewPagedResponse(response_models.NewAuditLogResponses(entries), page, pageSize, total), nil
}

func (s *AuditService) GetAuditLog(ctx context.Context, id uuid.UUID) (*response_models.AuditLogResponse, error) {
	entry, err := s.auditRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if entry == nil {
		return nil, utils.ErrAuditLogNotFound
	}

	resp := response_models.NewAuditLogResponse(entry)
	return &resp, nil
}

func (s *AuditService) Recent(ctx context.Context) ([]response_models.AuditLogResponse, error) {
	entries, err := s.auditRepo.Recent(ctx, recentAuditLimit)
	if err != nil {
		return nil, translateErr(err)
	}
	return response_models.NewAuditLogResponses(entries), nil
}

// ByCreator returns the entries whose target is the creator record itself.
func (s *AuditService) ByCreator(ctx context.Context, creatorID string) ([]response_models.AuditLogResponse, error) {
	if strings.TrimSpace(creatorID) == "" {
		return nil, validationErr("creator_id is required")
	}
	id, err := parseUUID("creator_id", creatorID)
	if err != nil {
		return nil, err
	}

	entries, _, err := s.auditRepo.List(ctx, repositories.AuditLogFilter{
		TargetModel: db_models.TargetCreator,
		TargetID:    &id,
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return response_models.NewAuditLogResponses(entries), nil
}
