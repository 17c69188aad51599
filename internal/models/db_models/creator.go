package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Creator struct {
	BaseModel
	CreatedByID     *uuid.UUID `gorm:"type:uuid"`
	LastUpdatedByID *uuid.UUID `gorm:"type:uuid"`

	CreatorName     string  `gorm:"size:200;not null"`
	CreatorEmail    string  `gorm:"size:254;uniqueIndex;not null"`
	CreatorPhone    *string `gorm:"size:20"`
	CreatorLocation string  `gorm:"size:200"`
	CreatorTimezone string  `gorm:"size:50;not null"`

	BrandName        string `gorm:"size:200;index;not null"`
	BrandTagline     string `gorm:"size:500"`
	BrandNiche       string `gorm:"size:200;not null"`
	BrandWebsite     string `gorm:"size:500"`
	BrandDescription string `gorm:"type:text"`

	JourneyStatus    JourneyStatus `gorm:"size:20;index:idx_creator_status_health;not null"`
	HealthScore      HealthScore   `gorm:"size:10;index:idx_creator_status_health;not null"`
	LastStatusChange time.Time     `gorm:"index;not null"`
	PriorityLevel    int           `gorm:"not null"`

	InstagramHandle  string `gorm:"size:100"`
	YoutubeChannel   string `gorm:"size:500"`
	TiktokHandle     string `gorm:"size:100"`
	TwitterHandle    string `gorm:"size:100"`
	LinkedinProfile  string `gorm:"size:500"`
	OtherSocialLinks datatypes.JSONMap

	PrimaryCommunicationChannel string     `gorm:"size:50;not null"`
	LastContactedDate           *time.Time `gorm:"type:date"`
	NextFollowUpDate            *time.Time `gorm:"type:date"`
	CommunicationNotes          string     `gorm:"type:text"`

	CustomFields  datatypes.JSONMap
	IsActive      bool   `gorm:"not null"`
	InternalNotes string `gorm:"type:text"`
	Tags          datatypes.JSONSlice[string]

	Milestones  []Milestone  `gorm:"constraint:OnDelete:CASCADE"`
	Credentials []Credential `gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Creator) DisplayName() string {
	return c.CreatorName + " - " + c.BrandName
}
