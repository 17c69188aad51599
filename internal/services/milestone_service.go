package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/models/response_models"
	"studiocrm/internal/repositories"
	"studiocrm/pkg/logger"
	"studiocrm/pkg/utils"
)

type MilestoneServiceInterface interface {
	ListMilestones(ctx context.Context, query request_models.MilestoneListQuery) (response_models.PagedResponse[response_models.MilestoneResponse], error)
	ListByCreator(ctx context.Context, creatorID string) ([]response_models.MilestoneResponse, error)
	GetMilestone(ctx context.Context, id uuid.UUID) (*response_models.MilestoneResponse, error)
	CreateMilestone(ctx context.Context, req request_models.CreateMilestoneRequest) (*response_models.MilestoneResponse, error)
	UpdateMilestone(ctx context.Context, id uuid.UUID, req request_models.UpdateMilestoneRequest) (*response_models.MilestoneResponse, error)
	DeleteMilestone(ctx context.Context, id uuid.UUID) error
	MarkComplete(ctx context.Context, id uuid.UUID) (*response_models.MilestoneResponse, error)
}

type MilestoneService struct {
	milestones repositories.MilestoneRepository
	creators   repositories.CreatorRepository
	clock      utils.Clock
}

func NewMilestoneService(milestones repositories.MilestoneRepository, creators repositories.CreatorRepository, clock utils.Clock) MilestoneServiceInterface {
	return &MilestoneService{
		milestones: milestones,
		creators:   creators,
		clock:      clock,
	}
}

func (s *MilestoneService) ListMilestones(ctx context.Context, query request_models.MilestoneListQuery) (response_models.PagedResponse[response_models.MilestoneResponse], error) {
	var empty response_models.PagedResponse[response_models.MilestoneResponse]

	creatorID, err := parseOptionalUUID("creator_id", query.CreatorID)
	if err != nil {
		return empty, err
	}

	var stage db_models.JourneyStatus
	if query.RelatedJourneyStage != "" {
		stage = db_models.JourneyStatus(strings.ToUpper(query.RelatedJourneyStage))
		if !stage.Valid() {
			return empty, validationErr("unknown related_journey_stage %q", query.RelatedJourneyStage)
		}
	}

	ordering, err := parseOrdering(query.Ordering, repositories.MilestoneOrderingFields, nil)
	if err != nil {
		return empty, err
	}
	page, pageSize, err := utils.NormalizePage(query.Page, query.PageSize)
	if err != nil {
		return empty, err
	}

	milestones, total, err := s.milestones.List(ctx, repositories.MilestoneFilter{
		CreatorID:           creatorID,
		IsCompleted:         query.IsCompleted,
		RelatedJourneyStage: stage,
		Ordering:            ordering,
		Page:                page,
		PageSize:            pageSize,
	})
	if err != nil {
		return empty, translateErr(err)
	}

	return response_models.NewPagedResponse(toMilestoneResponses(milestones), page, pageSize, total), nil
}

func (s *MilestoneService) ListByCreator(ctx context.Context, creatorID string) ([]response_models.MilestoneResponse, error) {
	if strings.TrimSpace(creatorID) == "" {
		return nil, validationErr("creator_id is required")
	}
	id, err := parseUUID("creator_id", creatorID)
	if err != nil {
		return nil, err
	}

	milestones, _, err := s.milestones.List(ctx, repositories.MilestoneFilter{CreatorID: &id})
	if err != nil {
		return nil, translateErr(err)
	}
	return toMilestoneResponses(milestones), nil
}

func (s *MilestoneService) GetMilestone(ctx context.Context, id uuid.UUID) (*response_models.MilestoneResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewMilestoneResponse(m)
	return &resp, nil
}

func (s *MilestoneService) CreateMilestone(ctx context.Context, req request_models.CreateMilestoneRequest) (*response_models.MilestoneResponse, error) {
	creator, err := s.creators.FindByID(ctx, req.CreatorID)
	if err != nil {
		return nil, translateErr(err)
	}
	if creator == nil {
		return nil, validationErr("creator %s does not exist", req.CreatorID)
	}

	stage := db_models.JourneyStatus(req.RelatedJourneyStage)
	if !stage.Valid() {
		return nil, validationErr("unknown related_journey_stage %q", req.RelatedJourneyStage)
	}
	targetDate, err := utils.ParseDate(req.TargetDate)
	if err != nil {
		return nil, err
	}
	completedDate, err := utils.ParseDate(req.CompletedDate)
	if err != nil {
		return nil, err
	}

	m := &db_models.Milestone{
		CreatorID:           req.CreatorID,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		TargetDate:          targetDate,
		CompletedDate:       completedDate,
		IsCompleted:         req.IsCompleted,
		RelatedJourneyStage: stage,
	}
	s.enforceCompletion(m)

	if err := s.milestones.Create(ctx, m); err != nil {
		return nil, translateErr(err)
	}

	logger.FromContext(ctx).Info("Milestone created",
		zap.String("milestone_id", m.ID.String()),
		zap.String("creator_id", m.CreatorID.String()),
	)

	resp := response_models.NewMilestoneResponse(m)
	return &resp, nil
}

func (s *MilestoneService) UpdateMilestone(ctx context.Context, id uuid.UUID, req request_models.UpdateMilestoneRequest) (*response_models.MilestoneResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validationErr("title cannot be blank")
		}
		m.Title = strings.TrimSpace(*req.Title)
	}
	setString(&m.Description, req.Description)
	if req.IsCompleted != nil {
		m.IsCompleted = *req.IsCompleted
	}
	if req.RelatedJourneyStage != nil {
		stage := db_models.JourneyStatus(*req.RelatedJourneyStage)
		if !stage.Valid() {
			return nil, validationErr("unknown related_journey_stage %q", *req.RelatedJourneyStage)
		}
		m.RelatedJourneyStage = stage
	}
	if err := setDate(&m.TargetDate, req.TargetDate); err != nil {
		return nil, err
	}
	if err := setDate(&m.CompletedDate, req.CompletedDate); err != nil {
		return nil, err
	}
	s.enforceCompletion(m)

	if err := s.milestones.Save(ctx, m); err != nil {
		return nil, translateErr(err)
	}

	resp := response_models.NewMilestoneResponse(m)
	return &resp, nil
}

func (s *MilestoneService) DeleteMilestone(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.milestones.Delete(ctx, id); err != nil {
		return translateErr(err)
	}
	return nil
}

// MarkComplete sets is_completed and stamps today's date, replacing any
// earlier completed_date.
func (s *MilestoneService) MarkComplete(ctx context.Context, id uuid.UUID) (*response_models.MilestoneResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	today := utils.DateOnly(s.clock.Now())
	m.IsCompleted = true
	m.CompletedDate = &today

	if err := s.milestones.Save(ctx, m); err != nil {
		return nil, translateErr(err)
	}

	resp := response_models.NewMilestoneResponse(m)
	return &resp, nil
}

// enforceCompletion keeps is_completed => completed_date set. Reopening a
// milestone leaves completed_date as it was.
func (s *MilestoneService) enforceCompletion(m *db_models.Milestone) {
	if m.IsCompleted && m.CompletedDate == nil {
		today := utils.DateOnly(s.clock.Now())
		m.CompletedDate = &today
	}
}

func (s *MilestoneService) find(ctx context.Context, id uuid.UUID) (*db_models.Milestone, error) {
	m, err := s.milestones.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if m == nil {
		return nil, utils.ErrMilestoneNotFound
	}
	return m, nil
}

func toMilestoneResponses(milestones []db_models.Milestone) []response_models.MilestoneResponse {
	out := make([]response_models.MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		out = append(out, response_models.NewMilestoneResponse(&milestones[i]))
	}
	return out
}
