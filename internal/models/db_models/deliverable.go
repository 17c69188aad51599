package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AIDeliverable struct {
	BaseModel
	CreatorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Creator     *Creator   `gorm:"foreignKey:CreatorID"`
	CreatedByID *uuid.UUID `gorm:"type:uuid"`

	DeliverableType  string `gorm:"size:100;not null;index"`
	PromptUsed       string `gorm:"type:text"`
	ContextData      datatypes.JSONMap
	AIModel          string `gorm:"column:ai_model;size:50"`
	GeneratedContent string `gorm:"type:text"`
	FileURL          string `gorm:"size:500"`

	Status       DeliverableStatus `gorm:"size:20;index;not null"`
	ErrorMessage string            `gorm:"type:text"`

	// GenerationStartedAt is set when a row enters GENERATING.
	GenerationStartedAt *time.Time
}

func (d *AIDeliverable) DisplayName() string {
	if d.Creator == nil {
		return d.DeliverableType
	}
	return d.DeliverableType + " for " + d.Creator.BrandName
}
