package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiocrm/internal/models/db_models"
)

type DeliverableFilter struct {
	CreatorID       *uuid.UUID
	DeliverableType string
	Status          db_models.DeliverableStatus
	Page            int
	PageSize        int
}

type DeliverableRepository interface {
	WithTx(tx *gorm.DB) DeliverableRepository

	Create(ctx context.Context, d *db_models.AIDeliverable) error
	Save(ctx context.Context, d *db_models.AIDeliverable) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.AIDeliverable, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.AIDeliverable, error)
	List(ctx context.Context, filter DeliverableFilter) ([]db_models.AIDeliverable, int64, error)
}

type deliverableRepository struct {
	db *gorm.DB
}

func NewDeliverableRepository(db *gorm.DB) DeliverableRepository {
	return &deliverableRepository{db: db}
}

func (r *deliverableRepository) WithTx(tx *gorm.DB) DeliverableRepository {
	return &deliverableRepository{db: tx}
}

func (r *deliverableRepository) Create(ctx context.Context, d *db_models.AIDeliverable) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

func (r *deliverableRepository) Save(ctx context.Context, d *db_models.AIDeliverable) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error
}

func (r *deliverableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.AIDeliverable{}, "id = ?", id).Error
}

func (r *deliverableRepository) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Delete(&db_models.AIDeliverable{}).Error
}

func (r *deliverableRepository) first(q *gorm.DB, id uuid.UUID) (*db_models.AIDeliverable, error) {
	var d db_models.AIDeliverable
	err := q.Preload("Creator").First(&d, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *deliverableRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.AIDeliverable, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *deliverableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.AIDeliverable, error) {
	return r.first(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *deliverableRepository) filtered(ctx context.Context, f DeliverableFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&db_models.AIDeliverable{})

	if f.CreatorID != nil {
		q = q.Where("creator_id = ?", *f.CreatorID)
	}
	if f.DeliverableType != "" {
		q = q.Where("deliverable_type = ?", f.DeliverableType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *deliverableRepository) List(ctx context.Context, f DeliverableFilter) ([]db_models.AIDeliverable, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []db_models.AIDeliverable
	q := r.filtered(ctx, f).Preload("Creator").Order("created_at DESC").Order("id")
	if err := paginate(q, f.Page, f.PageSize).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
