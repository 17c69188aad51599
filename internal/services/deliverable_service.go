package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/infra"
	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/models/response_models"
	"studiocrm/internal/repositories"
	"studiocrm/pkg/ai"
	"studiocrm/pkg/logger"
	"studiocrm/pkg/metrics"
	"studiocrm/pkg/utils"
)

// staleGenerationAfter is how long a row may sit in GENERATING before another
// Generate call may take it over.
const staleGenerationAfter = 10 * time.Minute

type DeliverableServiceInterface interface {
	ListDeliverables(ctx context.Context, query request_models.DeliverableListQuery) (response_models.PagedResponse[response_models.DeliverableResponse], error)
	GetDeliverable(ctx context.Context, id uuid.UUID) (*response_models.DeliverableResponse, error)
	CreateDeliverable(ctx context.Context, actor audit.Actor, req request_models.CreateDeliverableRequest) (*response_models.DeliverableResponse, error)
	Generate(ctx context.Context, actor audit.Actor, id uuid.UUID) (*response_models.DeliverableResponse, error)
	DeleteDeliverable(ctx context.Context, id uuid.UUID) error
}

type DeliverableService struct {
	db           *gorm.DB
	deliverables repositories.DeliverableRepository
	creators     repositories.CreatorRepository
	generator    ai.Generator
	recorder     *audit.Recorder
	clock        utils.Clock
}

func NewDeliverableService(
	db *gorm.DB,
	deliverables repositories.DeliverableRepository,
	creators repositories.CreatorRepository,
	generator ai.Generator,
	recorder *audit.Recorder,
	clock utils.Clock,
) DeliverableServiceInterface {
	return &DeliverableService{
		db:           db,
		deliverables: deliverables,
		creators:     creators,
		generator:    generator,
		recorder:     recorder,
		clock:        clock,
	}
}

func (s *DeliverableService) ListDeliverables(ctx context.Context, query request_models.DeliverableListQuery) (response_models.PagedResponse[response_models.DeliverableResponse], error) {
	var empty response_models.PagedResponse[response_models.DeliverableResponse]

	creatorID, err := parseOptionalUUID("creator_id", query.CreatorID)
	if err != nil {
		return empty, err
	}

	var status db_models.DeliverableStatus
	if query.Status != "" {
		status = db_models.DeliverableStatus(strings.ToUpper(query.Status))
		if !status.Valid() {
			return empty, validationErr("unknown status %q", query.Status)
		}
	}

	page, pageSize, err := utils.NormalizePage(query.Page, query.PageSize)
	if err != nil {
		return empty, err
	}

	items, total, err := s.deliverables.List(ctx, repositories.DeliverableFilter{
		CreatorID:       creatorID,
		DeliverableType: strings.TrimSpace(query.DeliverableType),
		Status:          status,
		Page:            page,
		PageSize:        pageSize,
	})
	if err != nil {
		return empty, translateErr(err)
	}

	out := make([]response_models.DeliverableResponse, 0, len(items))
	for i := range items {
		out = append(out, response_models.NewDeliverableResponse(&items[i]))
	}
	return response_models.NewPagedResponse(out, page, pageSize, total), nil
}

func (s *DeliverableService) GetDeliverable(ctx context.Context, id uuid.UUID) (*response_models.DeliverableResponse, error) {
	d, err := s.deliverables.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if d == nil {
		return nil, utils.ErrDeliverableNotFound
	}

	resp := response_models.NewDeliverableResponse(d)
	return &resp, nil
}

// CreateDeliverable stores a PENDING deliverable with a snapshot of the
// creator as it is now. Nothing is generated until Generate is called.
func (s *DeliverableService) CreateDeliverable(ctx context.Context, actor audit.Actor, req request_models.CreateDeliverableRequest) (*response_models.DeliverableResponse, error) {
	creator, err := s.creators.FindByID(ctx, req.CreatorID)
	if err != nil {
		return nil, translateErr(err)
	}
	if creator == nil {
		return nil, validationErr("creator %s does not exist", req.CreatorID)
	}

	deliverableType := strings.TrimSpace(req.DeliverableType)
	if deliverableType == "" {
		return nil, validationErr("deliverable_type is required")
	}

	snapshot := creatorSnapshot(creator)
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = defaultPrompt(deliverableType, snapshot)
	}

	d := &db_models.AIDeliverable{
		CreatorID:       creator.ID,
		Creator:         creator,
		CreatedByID:     actor.UserID,
		DeliverableType: deliverableType,
		PromptUsed:      prompt,
		ContextData:     snapshot,
		AIModel:         s.generator.Model(),
		Status:          db_models.DeliverablePending,
	}
	if err := s.deliverables.Create(ctx, d); err != nil {
		return nil, translateErr(err)
	}

	logger.FromContext(ctx).Info("Deliverable created",
		zap.String("deliverable_id", d.ID.String()),
		zap.String("deliverable_type", d.DeliverableType),
	)

	resp := response_models.NewDeliverableResponse(d)
	return &resp, nil
}

// Generate runs PENDING or FAILED -> GENERATING -> COMPLETED or FAILED. The
// provider call happens between two short transactions so no row lock is
// held while waiting on it. A row left in GENERATING for longer than
// staleGenerationAfter can be generated again.
func (s *DeliverableService) Generate(ctx context.Context, actor audit.Actor, id uuid.UUID) (*response_models.DeliverableResponse, error) {
	log := logger.FromContext(ctx)

	var prompt string
	err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.deliverables.WithTx(tx)

		d, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return utils.ErrDeliverableNotFound
		}
		startedAt := s.clock.Now()
		if !canStartGeneration(d, startedAt) {
			return fmt.Errorf("%w: cannot generate a %s deliverable", utils.ErrInvalidTransition, d.Status)
		}
		if d.Status == db_models.DeliverableGenerating {
			log.Warn("Taking over stale generation", zap.String("deliverable_id", id.String()))
		}

		d.Status = db_models.DeliverableGenerating
		d.GenerationStartedAt = &startedAt
		d.AIModel = s.generator.Model()
		d.ErrorMessage = ""
		prompt = d.PromptUsed
		return repo.Save(ctx, d)
	})
	if err != nil {
		return nil, translateErr(err)
	}

	content, genErr := s.generator.Generate(ctx, prompt)

	// The outcome is stored even if the caller has gone away.
	finishCtx := context.WithoutCancel(ctx)
	now := s.clock.Now()

	var d *db_models.AIDeliverable
	err = infra.WithTransaction(finishCtx, s.db, func(tx *gorm.DB) error {
		repo := s.deliverables.WithTx(tx)

		var err error
		d, err = repo.FindByIDForUpdate(finishCtx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return utils.ErrDeliverableNotFound
		}

		if genErr != nil {
			d.Status = db_models.DeliverableFailed
			d.ErrorMessage = genErr.Error()
		} else {
			d.Status = db_models.DeliverableCompleted
			d.GeneratedContent = content
		}
		if err := repo.Save(finishCtx, d); err != nil {
			return err
		}

		return s.recorder.Record(finishCtx, tx, audit.DeliverableGenerated(actor, now, d))
	})
	if err != nil {
		return nil, translateErr(err)
	}

	metrics.RecordGeneration(s.generator.Provider(), string(d.Status))

	if genErr != nil {
		log.Warn("Deliverable generation failed",
			zap.String("deliverable_id", id.String()),
			zap.String("provider", s.generator.Provider()),
			zap.Error(genErr),
		)
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationFailed, genErr)
	}

	log.Info("Deliverable generated",
		zap.String("deliverable_id", id.String()),
		zap.String("provider", s.generator.Provider()),
		zap.Int("content_length", len(content)),
	)

	resp := response_models.NewDeliverableResponse(d)
	return &resp, nil
}

func (s *DeliverableService) DeleteDeliverable(ctx context.Context, id uuid.UUID) error {
	d, err := s.deliverables.FindByID(ctx, id)
	if err != nil {
		return translateErr(err)
	}
	if d == nil {
		return utils.ErrDeliverableNotFound
	}
	if err := s.deliverables.Delete(ctx, id); err != nil {
		return translateErr(err)
	}
	return nil
}

func creatorSnapshot(c *db_models.Creator) datatypes.JSONMap {
	tags := []string(c.Tags)
	if tags == nil {
		tags = []string{}
	}
	return datatypes.JSONMap{
		"creator_name":      c.CreatorName,
		"brand_name":        c.BrandName,
		"brand_tagline":     c.BrandTagline,
		"brand_niche":       c.BrandNiche,
		"brand_description": c.BrandDescription,
		"brand_website":     c.BrandWebsite,
		"journey_status":    string(c.JourneyStatus),
		"instagram_handle":  c.InstagramHandle,
		"tiktok_handle":     c.TiktokHandle,
		"youtube_channel":   c.YoutubeChannel,
		"tags":              tags,
	}
}

func defaultPrompt(deliverableType string, snapshot datatypes.JSONMap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s for the brand %q", deliverableType, snapshot["brand_name"])
	if niche, _ := snapshot["brand_niche"].(string); niche != "" {
		fmt.Fprintf(&b, " in the %s niche", niche)
	}
	fmt.Fprintf(&b, ", run by %s.", snapshot["creator_name"])

	if tagline, _ := snapshot["brand_tagline"].(string); tagline != "" {
		fmt.Fprintf(&b, "\nTagline: %s", tagline)
	}
	if desc, _ := snapshot["brand_description"].(string); desc != "" {
		fmt.Fprintf(&b, "\nAbout the brand: %s", desc)
	}
	fmt.Fprintf(&b, "\nThe brand is currently in the %s stage.",
		db_models.JourneyStatus(fmt.Sprint(snapshot["journey_status"])).Display())
	return b.String()
}

func canStartGeneration(d *db_models.AIDeliverable, now time.Time) bool {
	switch d.Status {
	case db_models.DeliverablePending, db_models.DeliverableFailed:
		return true
	case db_models.DeliverableGenerating:
		return d.GenerationStartedAt == nil || now.Sub(*d.GenerationStartedAt) >= staleGenerationAfter
	default:
		return false
	}
}
