package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	BaseModel
	CreatorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Creator   *Creator  `gorm:"foreignKey:CreatorID"`

	Title               string        `gorm:"size:200;not null"`
	Description         string        `gorm:"type:text"`
	TargetDate          *time.Time    `gorm:"type:date"`
	CompletedDate       *time.Time    `gorm:"type:date"`
	IsCompleted         bool          `gorm:"not null"`
	RelatedJourneyStage JourneyStatus `gorm:"size:20;not null"`
}
