package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiocrm/internal/models/db_models"
)

type MilestoneFilter struct {
	CreatorID           *uuid.UUID
	IsCompleted         *bool
	RelatedJourneyStage db_models.JourneyStatus
	Ordering            []Ordering
	Page                int
	PageSize            int
}

var MilestoneOrderingFields = map[string]bool{
	"target_date":    true,
	"completed_date": true,
	"created_at":     true,
}

type MilestoneRepository interface {
	WithTx(tx *gorm.DB) MilestoneRepository

	Create(ctx context.Context, m *db_models.Milestone) error
	Save(ctx context.Context, m *db_models.Milestone) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Milestone, error)
	List(ctx context.Context, filter MilestoneFilter) ([]db_models.Milestone, int64, error)
}

type milestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) WithTx(tx *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: tx}
}

func (r *milestoneRepository) Create(ctx context.Context, m *db_models.Milestone) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *milestoneRepository) Save(ctx context.Context, m *db_models.Milestone) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

func (r *milestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Milestone{}, "id = ?", id).Error
}

func (r *milestoneRepository) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Delete(&db_models.Milestone{}).Error
}

func (r *milestoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Milestone, error) {
	var m db_models.Milestone
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *milestoneRepository) filtered(ctx context.Context, f MilestoneFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&db_models.Milestone{})

	if f.CreatorID != nil {
		q = q.Where("creator_id = ?", *f.CreatorID)
	}
	if f.IsCompleted != nil {
		q = q.Where("is_completed = ?", *f.IsCompleted)
	}
	if f.RelatedJourneyStage != "" {
		q = q.Where("related_journey_stage = ?", f.RelatedJourneyStage)
	}
	return q
}

func (r *milestoneRepository) List(ctx context.Context, f MilestoneFilter) ([]db_models.Milestone, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ordering := f.Ordering
	if len(ordering) == 0 {
		ordering = []Ordering{{Column: "target_date"}, {Column: "is_completed", Desc: true}}
	}

	var milestones []db_models.Milestone
	q := applyOrdering(r.filtered(ctx, f), ordering).Order("id")
	if err := paginate(q, f.Page, f.PageSize).Find(&milestones).Error; err != nil {
		return nil, 0, err
	}
	return milestones, total, nil
}
