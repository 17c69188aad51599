package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// AllModels lists every table, in dependency order, for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Creator{},
		&Credential{},
		&Milestone{},
		&AIDeliverable{},
		&AuditLog{},
	}
}
