package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studiocrm/internal/models/db_models"
)

type AuditLogFilter struct {
	ActionType  db_models.ActionType
	TargetModel string
	TargetID    *uuid.UUID
	UserID      *uuid.UUID
	Page        int
	PageSize    int
}

// AuditLogRepository is read-only apart from Insert, which always runs in
// the caller's transaction.
type AuditLogRepository interface {
	Insert(ctx context.Context, tx *gorm.DB, entry *db_models.AuditLog) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.AuditLog, error)
	List(ctx context.Context, filter AuditLogFilter) ([]db_models.AuditLog, int64, error)
	Recent(ctx context.Context, limit int) ([]db_models.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Insert(ctx context.Context, tx *gorm.DB, entry *db_models.AuditLog) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.AuditLog, error) {
	var entry db_models.AuditLog
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *auditLogRepository) filtered(ctx context.Context, f AuditLogFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&db_models.AuditLog{})

	if f.ActionType != "" {
		q = q.Where("action_type = ?", f.ActionType)
	}
	if f.TargetModel != "" {
		q = q.Where("target_model = ?", f.TargetModel)
	}
	if f.TargetID != nil {
		q = q.Where("target_id = ?", *f.TargetID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	return q
}

func (r *auditLogRepository) List(ctx context.Context, f AuditLogFilter) ([]db_models.AuditLog, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []db_models.AuditLog
	q := r.filtered(ctx, f).Order("timestamp DESC").Order("id")
	if err := paginate(q, f.Page, f.PageSize).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *auditLogRepository) Recent(ctx context.Context, limit int) ([]db_models.AuditLog, error) {
	var entries []db_models.AuditLog
	err := r.db.WithContext(ctx).Order("timestamp DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
