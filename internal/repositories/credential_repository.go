package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiocrm/internal/models/db_models"
)

type CredentialFilter struct {
	CreatorID            *uuid.UUID
	PlatformName         string
	PlatformNameContains string
	IsActive             *bool
	Page                 int
	PageSize             int
}

type CredentialRepository interface {
	WithTx(tx *gorm.DB) CredentialRepository

	Create(ctx context.Context, cred *db_models.Credential) error
	Save(ctx context.Context, cred *db_models.Credential) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Credential, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Credential, error)
	FindByIdentity(ctx context.Context, creatorID uuid.UUID, platform, account string) (*db_models.Credential, error)
	List(ctx context.Context, filter CredentialFilter) ([]db_models.Credential, int64, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]db_models.Credential, error)
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) WithTx(tx *gorm.DB) CredentialRepository {
	return &credentialRepository{db: tx}
}

func (r *credentialRepository) Create(ctx context.Context, cred *db_models.Credential) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(cred).Error
}

func (r *credentialRepository) Save(ctx context.Context, cred *db_models.Credential) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(cred).Error
}

func (r *credentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Credential{}, "id = ?", id).Error
}

func (r *credentialRepository) first(q *gorm.DB, conds ...interface{}) (*db_models.Credential, error) {
	var cred db_models.Credential
	err := q.Preload("Creator").First(&cred, conds...).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Credential, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *credentialRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Credential, error) {
	return r.first(forUpdate(r.db.WithContext(ctx)), "id = ?", id)
}

func (r *credentialRepository) FindByIdentity(ctx context.Context, creatorID uuid.UUID, platform, account string) (*db_models.Credential, error) {
	return r.first(r.db.WithContext(ctx),
		"creator_id = ? AND platform_name = ? AND account_identifier = ?", creatorID, platform, account)
}

func (r *credentialRepository) filtered(ctx context.Context, f CredentialFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&db_models.Credential{})

	if f.CreatorID != nil {
		q = q.Where("creator_id = ?", *f.CreatorID)
	}
	if f.PlatformName != "" {
		q = q.Where("platform_name = ?", f.PlatformName)
	}
	if f.PlatformNameContains != "" {
		q = q.Where("LOWER(platform_name) LIKE ?", likePattern(f.PlatformNameContains))
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *credentialRepository) List(ctx context.Context, f CredentialFilter) ([]db_models.Credential, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var creds []db_models.Credential
	q := r.filtered(ctx, f).Preload("Creator").Order("platform_name ASC").Order("id")
	if err := paginate(q, f.Page, f.PageSize).Find(&creds).Error; err != nil {
		return nil, 0, err
	}
	return creds, total, nil
}

func (r *credentialRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]db_models.Credential, error) {
	var creds []db_models.Credential
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("creator_id = ?", creatorID).
		Order("platform_name ASC").
		Find(&creds).Error
	if err != nil {
		return nil, err
	}
	return creds, nil
}
