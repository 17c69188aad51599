package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiocrm/internal/models/db_models"
)

type CreatorFilter struct {
	JourneyStatuses    []db_models.JourneyStatus
	HealthScores       []db_models.HealthScore
	BrandNiche         string
	BrandNicheContains string
	IsActive           *bool
	PriorityLevel      *int
	PriorityLevelGTE   *int
	PriorityLevelLTE   *int
	UrgentOnly         bool
	ActiveOnly         bool
	Search             string
	Ordering           []Ordering

	// Page and PageSize of zero return every match.
	Page     int
	PageSize int
}

// CreatorOrderingFields are the columns callers may sort by.
var CreatorOrderingFields = map[string]bool{
	"created_at":         true,
	"updated_at":         true,
	"last_status_change": true,
	"brand_name":         true,
	"creator_name":       true,
	"health_score":       true,
	"priority_level":     true,
}

type RelatedCounts struct {
	Milestones  int64
	Credentials int64
}

type CreatorRepository interface {
	WithTx(tx *gorm.DB) CreatorRepository

	Create(ctx context.Context, creator *db_models.Creator) error
	Save(ctx context.Context, creator *db_models.Creator) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Creator, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Creator, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*db_models.Creator, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Creator, error)

	List(ctx context.Context, filter CreatorFilter) ([]db_models.Creator, int64, error)
	ListUrgent(ctx context.Context, limit int) ([]db_models.Creator, error)
	ListActiveByStatus(ctx context.Context, status db_models.JourneyStatus) ([]db_models.Creator, error)
	ListRecentlyUpdated(ctx context.Context, limit int) ([]db_models.Creator, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	CountRelated(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]RelatedCounts, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	CountByStatus(ctx context.Context) (map[db_models.JourneyStatus]int64, error)
	CountByHealth(ctx context.Context) (map[db_models.HealthScore]int64, error)
}

type creatorRepository struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

func (r *creatorRepository) WithTx(tx *gorm.DB) CreatorRepository {
	return &creatorRepository{db: tx}
}

func (r *creatorRepository) Create(ctx context.Context, creator *db_models.Creator) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(creator).Error
}

func (r *creatorRepository) Save(ctx context.Context, creator *db_models.Creator) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(creator).Error
}

func (r *creatorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Creator{}, "id = ?", id).Error
}

func (r *creatorRepository) first(q *gorm.DB, conds ...interface{}) (*db_models.Creator, error) {
	var creator db_models.Creator
	err := q.First(&creator, conds...).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

func (r *creatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Creator, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *creatorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Creator, error) {
	return r.first(forUpdate(r.db.WithContext(ctx)), "id = ?", id)
}

func (r *creatorRepository) FindDetail(ctx context.Context, id uuid.UUID) (*db_models.Creator, error) {
	q := r.db.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("target_date ASC").Order("is_completed DESC")
		}).
		Preload("Credentials", func(db *gorm.DB) *gorm.DB {
			return db.Order("platform_name ASC")
		})
	return r.first(q, "id = ?", id)
}

func (r *creatorRepository) FindByEmail(ctx context.Context, email string) (*db_models.Creator, error) {
	return r.first(r.db.WithContext(ctx), "LOWER(creator_email) = ?", strings.ToLower(email))
}

func (r *creatorRepository) filtered(ctx context.Context, f CreatorFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&db_models.Creator{})

	if len(f.JourneyStatuses) > 0 {
		q = q.Where("journey_status IN ?", f.JourneyStatuses)
	}
	if len(f.HealthScores) > 0 {
		q = q.Where("health_score IN ?", f.HealthScores)
	}
	if f.BrandNiche != "" {
		q = q.Where("brand_niche = ?", f.BrandNiche)
	}
	if f.BrandNicheContains != "" {
		q = q.Where("LOWER(brand_niche) LIKE ?", likePattern(f.BrandNicheContains))
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.PriorityLevel != nil {
		q = q.Where("priority_level = ?", *f.PriorityLevel)
	}
	if f.PriorityLevelGTE != nil {
		q = q.Where("priority_level >= ?", *f.PriorityLevelGTE)
	}
	if f.PriorityLevelLTE != nil {
		q = q.Where("priority_level <= ?", *f.PriorityLevelLTE)
	}
	if f.UrgentOnly {
		q = q.Where("health_score IN ?", []db_models.HealthScore{db_models.HealthRed, db_models.HealthYellow})
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(
			"(LOWER(creator_name) LIKE ? OR LOWER(brand_name) LIKE ? OR LOWER(creator_email) LIKE ? OR LOWER(brand_niche) LIKE ?)",
			p, p, p, p,
		)
	}
	return q
}

func (r *creatorRepository) List(ctx context.Context, f CreatorFilter) ([]db_models.Creator, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var creators []db_models.Creator
	q := applyOrdering(r.filtered(ctx, f), f.Ordering).Order("id")
	if err := paginate(q, f.Page, f.PageSize).Find(&creators).Error; err != nil {
		return nil, 0, err
	}
	return creators, total, nil
}

func (r *creatorRepository) ListUrgent(ctx context.Context, limit int) ([]db_models.Creator, error) {
	var creators []db_models.Creator
	q := r.db.WithContext(ctx).
		Where("health_score IN ?", []db_models.HealthScore{db_models.HealthRed, db_models.HealthYellow}).
		Where("is_active = ?", true).
		Order("health_score ASC").
		Order("last_status_change ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&creators).Error; err != nil {
		return nil, err
	}
	return creators, nil
}

func (r *creatorRepository) ListActiveByStatus(ctx context.Context, status db_models.JourneyStatus) ([]db_models.Creator, error) {
	var creators []db_models.Creator
	err := r.db.WithContext(ctx).
		Where("journey_status = ? AND is_active = ?", status, true).
		Order("last_status_change DESC").
		Find(&creators).Error
	if err != nil {
		return nil, err
	}
	return creators, nil
}

func (r *creatorRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]db_models.Creator, error) {
	var creators []db_models.Creator
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&creators).Error
	if err != nil {
		return nil, err
	}
	return creators, nil
}

func (r *creatorRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&db_models.Creator{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

type countRow struct {
	CreatorID uuid.UUID
	N         int64
}

func (r *creatorRepository) CountRelated(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]RelatedCounts, error) {
	out := make(map[uuid.UUID]RelatedCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var milestones, credentials []countRow
	err := r.db.WithContext(ctx).Model(&db_models.Milestone{}).
		Select("creator_id, COUNT(*) AS n").
		Where("creator_id IN ?", ids).
		Group("creator_id").
		Scan(&milestones).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&db_models.Credential{}).
		Select("creator_id, COUNT(*) AS n").
		Where("creator_id IN ?", ids).
		Group("creator_id").
		Scan(&credentials).Error
	if err != nil {
		return nil, err
	}

	for _, row := range milestones {
		c := out[row.CreatorID]
		c.Milestones = row.N
		out[row.CreatorID] = c
	}
	for _, row := range credentials {
		c := out[row.CreatorID]
		c.Credentials = row.N
		out[row.CreatorID] = c
	}
	return out, nil
}

func (r *creatorRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&db_models.Creator{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Count(&n).Error
	return n, err
}

type groupRow struct {
	Grp string
	N   int64
}

func (r *creatorRepository) countGrouped(ctx context.Context, column string) ([]groupRow, error) {
	var rows []groupRow
	err := r.db.WithContext(ctx).Model(&db_models.Creator{}).
		Select(column + " AS grp, COUNT(*) AS n").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

// CountByStatus always returns every journey status, zero when absent.
func (r *creatorRepository) CountByStatus(ctx context.Context) (map[db_models.JourneyStatus]int64, error) {
	rows, err := r.countGrouped(ctx, "journey_status")
	if err != nil {
		return nil, err
	}

	out := make(map[db_models.JourneyStatus]int64, len(db_models.JourneyStatuses))
	for _, s := range db_models.JourneyStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[db_models.JourneyStatus(row.Grp)] = row.N
	}
	return out, nil
}

func (r *creatorRepository) CountByHealth(ctx context.Context) (map[db_models.HealthScore]int64, error) {
	rows, err := r.countGrouped(ctx, "health_score")
	if err != nil {
		return nil, err
	}

	out := make(map[db_models.HealthScore]int64, len(db_models.HealthScores))
	for _, h := range db_models.HealthScores {
		out[h] = 0
	}
	for _, row := range rows {
		out[db_models.HealthScore(row.Grp)] = row.N
	}
	return out, nil
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
