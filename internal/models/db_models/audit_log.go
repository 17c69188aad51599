package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studiocrm/pkg/utils"
)

// AuditLog is append-only: the update and delete hooks reject every change.
type AuditLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Timestamp time.Time  `gorm:"index:idx_audit_timestamp_action,priority:1;not null"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	UserEmail string     `gorm:"size:254;not null"`
	IPAddress *string    `gorm:"size:45"`

	ActionType    ActionType `gorm:"size:50;index:idx_audit_timestamp_action,priority:2;not null"`
	TargetModel   string     `gorm:"size:50;not null"`
	TargetID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	TargetDisplay string     `gorm:"size:200;not null"`

	Changes datatypes.JSONMap
	Notes   string `gorm:"type:text"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}

func (a *AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return utils.ErrAuditImmutable
}

func (a *AuditLog) BeforeDelete(tx *gorm.DB) error {
	return utils.ErrAuditImmutable
}
