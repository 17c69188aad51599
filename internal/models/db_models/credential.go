package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Credential secrets use the "encrypted" serializer and are stored sealed.
type Credential struct {
	BaseModel
	CreatorID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_credential_identity"`
	Creator     *Creator   `gorm:"foreignKey:CreatorID"`
	CreatedByID *uuid.UUID `gorm:"type:uuid"`

	PlatformName      string `gorm:"size:100;not null;uniqueIndex:idx_credential_identity"`
	AccountIdentifier string `gorm:"size:200;not null;uniqueIndex:idx_credential_identity"`

	LoginURL             string `gorm:"type:text;serializer:encrypted"`
	Password             string `gorm:"type:text;serializer:encrypted"`
	TwoFactorBackupCodes string `gorm:"type:text;serializer:encrypted"`
	APIKeys              string `gorm:"column:api_keys;type:text;serializer:encrypted"`

	Notes            string     `gorm:"type:text"`
	LastVerifiedDate *time.Time `gorm:"type:date"`
	ExpiresOn        *time.Time `gorm:"type:date"`
	IsActive         bool       `gorm:"not null"`
}

// DisplayName needs Creator preloaded; it falls back to the platform alone.
func (c *Credential) DisplayName() string {
	if c.Creator == nil {
		return c.PlatformName
	}
	return c.Creator.BrandName + " - " + c.PlatformName
}
