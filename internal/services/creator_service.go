package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/health"
	"studiocrm/internal/infra"
	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/models/response_models"
	"studiocrm/internal/repositories"
	"studiocrm/pkg/logger"
	"studiocrm/pkg/utils"
)

const (
	defaultPriorityLevel = 3
	defaultTimezone      = "UTC"
	defaultChannel       = "Email"
)

var defaultCreatorOrdering = []repositories.Ordering{{Column: "last_status_change", Desc: true}}

type CreatorServiceInterface interface {
	ListCreators(ctx context.Context, query request_models.CreatorListQuery) (response_models.PagedResponse[response_models.CreatorListItem], error)
	GetCreator(ctx context.Context, id uuid.UUID) (*response_models.CreatorDetail, error)
	CreateCreator(ctx context.Context, actor audit.Actor, req request_models.CreateCreatorRequest) (*response_models.CreatorDetail, error)
	UpdateCreator(ctx context.Context, actor audit.Actor, id uuid.UUID, req request_models.UpdateCreatorRequest) (*response_models.CreatorDetail, error)
	DeleteCreator(ctx context.Context, actor audit.Actor, id uuid.UUID) error
	UpdateJourneyStatus(ctx context.Context, actor audit.Actor, id uuid.UUID, status string, notes string) (*response_models.CreatorDetail, error)

	ListUrgent(ctx context.Context) ([]response_models.CreatorListItem, error)
	ListByStatus(ctx context.Context) (map[string][]response_models.CreatorListItem, error)
	ExportCSV(ctx context.Context, query request_models.CreatorListQuery, w io.Writer) error
	RecomputeHealth(ctx context.Context, actor audit.Actor) (int, error)
}

type CreatorService struct {
	db           *gorm.DB
	creators     repositories.CreatorRepository
	credentials  repositories.CredentialRepository
	milestones   repositories.MilestoneRepository
	deliverables repositories.DeliverableRepository
	recorder     *audit.Recorder
	clock        utils.Clock
}

func NewCreatorService(
	db *gorm.DB,
	creators repositories.CreatorRepository,
	credentials repositories.CredentialRepository,
	milestones repositories.MilestoneRepository,
	deliverables repositories.DeliverableRepository,
	recorder *audit.Recorder,
	clock utils.Clock,
) CreatorServiceInterface {
	return &CreatorService{
		db:           db,
		creators:     creators,
		credentials:  credentials,
		milestones:   milestones,
		deliverables: deliverables,
		recorder:     recorder,
		clock:        clock,
	}
}

func (s *CreatorService) ListCreators(ctx context.Context, query request_models.CreatorListQuery) (response_models.PagedResponse[response_models.CreatorListItem], error) {
	var empty response_models.PagedResponse[response_models.CreatorListItem]

	filter, err := buildCreatorFilter(query)
	if err != nil {
		return empty, err
	}
	filter.Page, filter.PageSize, err = utils.NormalizePage(query.Page, query.PageSize)
	if err != nil {
		return empty, err
	}

	creators, total, err := s.creators.List(ctx, filter)
	if err != nil {
		return empty, translateErr(err)
	}

	items, err := s.toListItems(ctx, creators)
	if err != nil {
		return empty, err
	}
	return response_models.NewPagedResponse(items, filter.Page, filter.PageSize, total), nil
}

func (s *CreatorService) GetCreator(ctx context.Context, id uuid.UUID) (*response_models.CreatorDetail, error) {
	creator, err := s.creators.FindDetail(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if creator == nil {
		return nil, utils.ErrCreatorNotFound
	}

	detail := response_models.NewCreatorDetail(creator)
	return &detail, nil
}

func (s *CreatorService) CreateCreator(ctx context.Context, actor audit.Actor, req request_models.CreateCreatorRequest) (*response_models.CreatorDetail, error) {
	now := s.clock.Now()

	creator, err := newCreatorFromRequest(req)
	if err != nil {
		return nil, err
	}
	creator.LastStatusChange = now
	creator.CreatedByID = actor.UserID
	creator.LastUpdatedByID = actor.UserID
	creator.HealthScore = health.Classify(now, creator.JourneyStatus, creator.LastStatusChange, creator.NextFollowUpDate)

	err = infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.creators.WithTx(tx)

		existing, err := repo.FindByEmail(ctx, creator.CreatorEmail)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s", utils.ErrEmailAlreadyExists, creator.CreatorEmail)
		}

		if err := repo.Create(ctx, creator); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", utils.ErrEmailAlreadyExists, creator.CreatorEmail)
			}
			return err
		}

		return s.recorder.Record(ctx, tx, audit.CreatorCreated(actor, now, creator))
	})
	if err != nil {
		return nil, translateErr(err)
	}

	logger.FromContext(ctx).Info("Creator created",
		zap.String("creator_id", creator.ID.String()),
		zap.String("brand_name", creator.BrandName),
	)

	detail := response_models.NewCreatorDetail(creator)
	return &detail, nil
}

func (s *CreatorService) UpdateCreator(ctx context.Context, actor audit.Actor, id uuid.UUID, req request_models.UpdateCreatorRequest) (*response_models.CreatorDetail, error) {
	now := s.clock.Now()

	err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.creators.WithTx(tx)

		before, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if before == nil {
			return utils.ErrCreatorNotFound
		}

		after := *before
		if err := applyCreatorUpdate(&after, req); err != nil {
			return err
		}

		if after.CreatorEmail != before.CreatorEmail {
			clash, err := repo.FindByEmail(ctx, after.CreatorEmail)
			if err != nil {
				return err
			}
			if clash != nil && clash.ID != after.ID {
				return fmt.Errorf("%w: %s", utils.ErrEmailAlreadyExists, after.CreatorEmail)
			}
		}

		if after.JourneyStatus != before.JourneyStatus {
			after.LastStatusChange = now
		}
		if actor.UserID != nil {
			after.LastUpdatedByID = actor.UserID
		}
		after.HealthScore = health.Classify(now, after.JourneyStatus, after.LastStatusChange, after.NextFollowUpDate)

		if err := repo.Save(ctx, &after); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", utils.ErrEmailAlreadyExists, after.CreatorEmail)
			}
			return err
		}

		return s.recorder.Record(ctx, tx, audit.CreatorUpdated(actor, now, before, &after, ""))
	})
	if err != nil {
		return nil, translateErr(err)
	}

	return s.GetCreator(ctx, id)
}

// DeleteCreator removes the creator and everything it owns. Each credential
// gets its own DELETE entry before the creator's.
func (s *CreatorService) DeleteCreator(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	now := s.clock.Now()

	err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		creators := s.creators.WithTx(tx)
		credentials := s.credentials.WithTx(tx)

		creator, err := creators.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if creator == nil {
			return utils.ErrCreatorNotFound
		}

		creds, err := credentials.ListByCreator(ctx, id)
		if err != nil {
			return err
		}
		for i := range creds {
			if err := credentials.Delete(ctx, creds[i].ID); err != nil {
				return err
			}
			entry := audit.CredentialEvent(actor, now, db_models.ActionDelete, &creds[i])
			if err := s.recorder.Record(ctx, tx, entry); err != nil {
				return err
			}
		}

		if err := s.milestones.WithTx(tx).DeleteByCreator(ctx, id); err != nil {
			return err
		}
		if err := s.deliverables.WithTx(tx).DeleteByCreator(ctx, id); err != nil {
			return err
		}
		if err := creators.Delete(ctx, id); err != nil {
			return err
		}

		return s.recorder.Record(ctx, tx, audit.CreatorDeleted(actor, now, creator))
	})
	if err != nil {
		return translateErr(err)
	}

	logger.FromContext(ctx).Info("Creator deleted", zap.String("creator_id", id.String()))
	return nil
}

// UpdateJourneyStatus is a no-op when the status is unchanged. Any status may
// follow any other.
func (s *CreatorService) UpdateJourneyStatus(ctx context.Context, actor audit.Actor, id uuid.UUID, status string, notes string) (*response_models.CreatorDetail, error) {
	next := db_models.JourneyStatus(status)
	if !next.Valid() {
		return nil, validationErr("unknown journey status %q", status)
	}

	now := s.clock.Now()
	err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.creators.WithTx(tx)

		before, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if before == nil {
			return utils.ErrCreatorNotFound
		}
		if before.JourneyStatus == next {
			return nil
		}

		after := *before
		after.JourneyStatus = next
		after.LastStatusChange = now
		if actor.UserID != nil {
			after.LastUpdatedByID = actor.UserID
		}
		after.HealthScore = health.Classify(now, after.JourneyStatus, after.LastStatusChange, after.NextFollowUpDate)

		if err := repo.Save(ctx, &after); err != nil {
			return err
		}

		note := strings.TrimSpace(notes)
		if note == "" {
			note = fmt.Sprintf("Journey status changed from %s to %s", before.JourneyStatus, next)
		}
		return s.recorder.Record(ctx, tx, audit.CreatorUpdated(actor, now, before, &after, note))
	})
	if err != nil {
		return nil, translateErr(err)
	}

	return s.GetCreator(ctx, id)
}

func (s *CreatorService) ListUrgent(ctx context.Context) ([]response_models.CreatorListItem, error) {
	creators, err := s.creators.ListUrgent(ctx, 0)
	if err != nil {
		return nil, translateErr(err)
	}
	return s.toListItems(ctx, creators)
}

// ListByStatus groups active creators under every journey status, keeping empty groups.
func (s *CreatorService) ListByStatus(ctx context.Context) (map[string][]response_models.CreatorListItem, error) {
	out := make(map[string][]response_models.CreatorListItem, len(db_models.JourneyStatuses))
	for _, status := range db_models.JourneyStatuses {
		creators, err := s.creators.ListActiveByStatus(ctx, status)
		if err != nil {
			return nil, translateErr(err)
		}
		items, err := s.toListItems(ctx, creators)
		if err != nil {
			return nil, err
		}
		out[string(status)] = items
	}
	return out, nil
}

var creatorCSVHeader = []string{
	"id", "creator_name", "creator_email", "brand_name", "brand_niche",
	"journey_status", "health_score", "priority_level", "is_active",
	"last_status_change", "next_follow_up_date", "tags", "created_at",
}

// ExportCSV writes every creator matching query, ignoring pagination.
func (s *CreatorService) ExportCSV(ctx context.Context, query request_models.CreatorListQuery, w io.Writer) error {
	filter, err := buildCreatorFilter(query)
	if err != nil {
		return err
	}

	creators, _, err := s.creators.List(ctx, filter)
	if err != nil {
		return translateErr(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(creatorCSVHeader); err != nil {
		return err
	}
	for i := range creators {
		c := &creators[i]
		record := []string{
			c.ID.String(),
			c.CreatorName,
			c.CreatorEmail,
			c.BrandName,
			c.BrandNiche,
			string(c.JourneyStatus),
			string(c.HealthScore),
			strconv.Itoa(c.PriorityLevel),
			strconv.FormatBool(c.IsActive),
			utils.FormatRFC3339(c.LastStatusChange),
			utils.FormatDate(c.NextFollowUpDate),
			strings.Join(c.Tags, ";"),
			utils.FormatRFC3339(c.CreatedAt),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RecomputeHealth reclassifies every creator against the current time and
// records an UPDATE entry for each score that changed.
func (s *CreatorService) RecomputeHealth(ctx context.Context, actor audit.Actor) (int, error) {
	ids, err := s.creators.ListIDs(ctx)
	if err != nil {
		return 0, translateErr(err)
	}

	log := logger.FromContext(ctx)
	changed := 0
	for _, id := range ids {
		now := s.clock.Now()
		updated := false

		err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
			repo := s.creators.WithTx(tx)

			before, err := repo.FindByIDForUpdate(ctx, id)
			if err != nil || before == nil {
				return err
			}

			score := health.Classify(now, before.JourneyStatus, before.LastStatusChange, before.NextFollowUpDate)
			if score == before.HealthScore {
				return nil
			}

			after := *before
			after.HealthScore = score
			if err := repo.Save(ctx, &after); err != nil {
				return err
			}
			updated = true
			return s.recorder.Record(ctx, tx, audit.CreatorUpdated(actor, now, before, &after, "Health score recomputed"))
		})
		if err != nil {
			return changed, translateErr(err)
		}
		if updated {
			changed++
			log.Info("Health score changed", zap.String("creator_id", id.String()))
		}
	}
	return changed, nil
}

func (s *CreatorService) toListItems(ctx context.Context, creators []db_models.Creator) ([]response_models.CreatorListItem, error) {
	return creatorListItems(ctx, s.creators, creators)
}

// creatorListItems attaches milestone and credential counts in two grouped queries.
func creatorListItems(ctx context.Context, repo repositories.CreatorRepository, creators []db_models.Creator) ([]response_models.CreatorListItem, error) {
	ids := make([]uuid.UUID, len(creators))
	for i := range creators {
		ids[i] = creators[i].ID
	}

	counts, err := repo.CountRelated(ctx, ids)
	if err != nil {
		return nil, translateErr(err)
	}

	items := make([]response_models.CreatorListItem, 0, len(creators))
	for i := range creators {
		c := counts[creators[i].ID]
		items = append(items, response_models.NewCreatorListItem(&creators[i], c.Milestones, c.Credentials))
	}
	return items, nil
}

func buildCreatorFilter(q request_models.CreatorListQuery) (repositories.CreatorFilter, error) {
	f := repositories.CreatorFilter{
		BrandNiche:         strings.TrimSpace(q.BrandNiche),
		BrandNicheContains: strings.TrimSpace(q.BrandNicheContains),
		IsActive:           q.IsActive,
		PriorityLevel:      q.PriorityLevel,
		PriorityLevelGTE:   q.PriorityLevelGTE,
		PriorityLevelLTE:   q.PriorityLevelLTE,
		UrgentOnly:         q.UrgentOnly,
		ActiveOnly:         q.ActiveOnly,
		Search:             strings.TrimSpace(q.Search),
	}

	for _, raw := range splitList(q.JourneyStatus, q.JourneyStatusIn) {
		status := db_models.JourneyStatus(strings.ToUpper(raw))
		if !status.Valid() {
			return f, validationErr("unknown journey_status %q", raw)
		}
		f.JourneyStatuses = append(f.JourneyStatuses, status)
	}
	for _, raw := range splitList(q.HealthScore, q.HealthScoreIn) {
		score := db_models.HealthScore(strings.ToUpper(raw))
		if !score.Valid() {
			return f, validationErr("unknown health_score %q", raw)
		}
		f.HealthScores = append(f.HealthScores, score)
	}

	ordering, err := parseOrdering(q.Ordering, repositories.CreatorOrderingFields, defaultCreatorOrdering)
	if err != nil {
		return f, err
	}
	f.Ordering = ordering
	return f, nil
}

func newCreatorFromRequest(req request_models.CreateCreatorRequest) (*db_models.Creator, error) {
	lastContacted, err := utils.ParseDate(req.LastContactedDate)
	if err != nil {
		return nil, err
	}
	nextFollowUp, err := utils.ParseDate(req.NextFollowUpDate)
	if err != nil {
		return nil, err
	}

	c := &db_models.Creator{
		CreatorName:                 strings.TrimSpace(req.CreatorName),
		CreatorEmail:                normalizeEmail(req.CreatorEmail),
		CreatorPhone:                req.CreatorPhone,
		CreatorLocation:             req.CreatorLocation,
		CreatorTimezone:             orDefault(req.CreatorTimezone, defaultTimezone),
		BrandName:                   strings.TrimSpace(req.BrandName),
		BrandTagline:                req.BrandTagline,
		BrandNiche:                  strings.TrimSpace(req.BrandNiche),
		BrandWebsite:                req.BrandWebsite,
		BrandDescription:            req.BrandDescription,
		JourneyStatus:               db_models.JourneyOnboarding,
		PriorityLevel:               defaultPriorityLevel,
		InstagramHandle:             req.InstagramHandle,
		YoutubeChannel:              req.YoutubeChannel,
		TiktokHandle:                req.TiktokHandle,
		TwitterHandle:               req.TwitterHandle,
		LinkedinProfile:             req.LinkedinProfile,
		OtherSocialLinks:            datatypes.JSONMap(req.OtherSocialLinks),
		PrimaryCommunicationChannel: orDefault(req.PrimaryCommunicationChannel, defaultChannel),
		LastContactedDate:           lastContacted,
		NextFollowUpDate:            nextFollowUp,
		CommunicationNotes:          req.CommunicationNotes,
		CustomFields:                datatypes.JSONMap(req.CustomFields),
		IsActive:                    true,
		InternalNotes:               req.InternalNotes,
		Tags:                        datatypes.JSONSlice[string](req.Tags),
	}

	if req.JourneyStatus != "" {
		c.JourneyStatus = db_models.JourneyStatus(req.JourneyStatus)
		if !c.JourneyStatus.Valid() {
			return nil, validationErr("unknown journey status %q", req.JourneyStatus)
		}
	}
	if req.PriorityLevel != nil {
		c.PriorityLevel = *req.PriorityLevel
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if c.OtherSocialLinks == nil {
		c.OtherSocialLinks = datatypes.JSONMap{}
	}
	if c.CustomFields == nil {
		c.CustomFields = datatypes.JSONMap{}
	}
	if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
	if err := validatePriority(c.PriorityLevel); err != nil {
		return nil, err
	}
	return c, nil
}

func applyCreatorUpdate(c *db_models.Creator, req request_models.UpdateCreatorRequest) error {
	setString(&c.CreatorName, req.CreatorName)
	if req.CreatorEmail != nil {
		c.CreatorEmail = normalizeEmail(*req.CreatorEmail)
	}
	if req.CreatorPhone != nil {
		phone := *req.CreatorPhone
		c.CreatorPhone = &phone
	}
	setString(&c.CreatorLocation, req.CreatorLocation)
	setString(&c.CreatorTimezone, req.CreatorTimezone)
	setString(&c.BrandName, req.BrandName)
	setString(&c.BrandTagline, req.BrandTagline)
	setString(&c.BrandNiche, req.BrandNiche)
	setString(&c.BrandWebsite, req.BrandWebsite)
	setString(&c.BrandDescription, req.BrandDescription)
	setString(&c.InstagramHandle, req.InstagramHandle)
	setString(&c.YoutubeChannel, req.YoutubeChannel)
	setString(&c.TiktokHandle, req.TiktokHandle)
	setString(&c.TwitterHandle, req.TwitterHandle)
	setString(&c.LinkedinProfile, req.LinkedinProfile)
	setString(&c.PrimaryCommunicationChannel, req.PrimaryCommunicationChannel)
	setString(&c.CommunicationNotes, req.CommunicationNotes)
	setString(&c.InternalNotes, req.InternalNotes)

	if req.JourneyStatus != nil {
		status := db_models.JourneyStatus(*req.JourneyStatus)
		if !status.Valid() {
			return validationErr("unknown journey status %q", *req.JourneyStatus)
		}
		c.JourneyStatus = status
	}
	if req.PriorityLevel != nil {
		if err := validatePriority(*req.PriorityLevel); err != nil {
			return err
		}
		c.PriorityLevel = *req.PriorityLevel
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.OtherSocialLinks != nil {
		c.OtherSocialLinks = datatypes.JSONMap(*req.OtherSocialLinks)
	}
	if req.CustomFields != nil {
		c.CustomFields = datatypes.JSONMap(*req.CustomFields)
	}
	if req.Tags != nil {
		c.Tags = datatypes.JSONSlice[string](*req.Tags)
	}

	if err := setDate(&c.LastContactedDate, req.LastContactedDate); err != nil {
		return err
	}
	if err := setDate(&c.NextFollowUpDate, req.NextFollowUpDate); err != nil {
		return err
	}

	if strings.TrimSpace(c.CreatorName) == "" || strings.TrimSpace(c.BrandName) == "" {
		return validationErr("creator_name and brand_name cannot be blank")
	}
	return nil
}

func validatePriority(p int) error {
	if p < 1 || p > 5 {
		return validationErr("priority_level must be between 1 and 5")
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// setDate leaves dst alone for nil, clears it for "" and parses anything else.
func setDate(dst **time.Time, src *string) error {
	if src == nil {
		return nil
	}
	parsed, err := utils.ParseDate(strings.TrimSpace(*src))
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
