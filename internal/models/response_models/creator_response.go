package response_models

import (
	"time"

	"studiocrm/internal/models/db_models"
	"studiocrm/pkg/utils"
)

type CreatorListItem struct {
	ID                   string    `json:"id"`
	CreatorName          string    `json:"creator_name"`
	CreatorEmail         string    `json:"creator_email"`
	BrandName            string    `json:"brand_name"`
	BrandNiche           string    `json:"brand_niche"`
	JourneyStatus        string    `json:"journey_status"`
	JourneyStatusDisplay string    `json:"journey_status_display"`
	HealthScore          string    `json:"health_score"`
	HealthScoreDisplay   string    `json:"health_score_display"`
	LastStatusChange     time.Time `json:"last_status_change"`
	PriorityLevel        int       `json:"priority_level"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	CreatedByID          *string   `json:"created_by_id"`
	MilestoneCount       int64     `json:"milestone_count"`
	CredentialCount      int64     `json:"credential_count"`
	Tags                 []string  `json:"tags"`
}

func NewCreatorListItem(c *db_models.Creator, milestones, credentials int64) CreatorListItem {
	tags := []string(c.Tags)
	if tags == nil {
		tags = []string{}
	}
	return CreatorListItem{
		ID:                   c.ID.String(),
		CreatorName:          c.CreatorName,
		CreatorEmail:         c.CreatorEmail,
		BrandName:            c.BrandName,
		BrandNiche:           c.BrandNiche,
		JourneyStatus:        string(c.JourneyStatus),
		JourneyStatusDisplay: c.JourneyStatus.Display(),
		HealthScore:          string(c.HealthScore),
		HealthScoreDisplay:   c.HealthScore.Display(),
		LastStatusChange:     c.LastStatusChange,
		PriorityLevel:        c.PriorityLevel,
		IsActive:             c.IsActive,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
		CreatedByID:          uuidString(c.CreatedByID),
		MilestoneCount:       milestones,
		CredentialCount:      credentials,
		Tags:                 tags,
	}
}

type CreatorDetail struct {
	ID              string  `json:"id"`
	CreatorName     string  `json:"creator_name"`
	CreatorEmail    string  `json:"creator_email"`
	CreatorPhone    *string `json:"creator_phone"`
	CreatorLocation string  `json:"creator_location"`
	CreatorTimezone string  `json:"creator_timezone"`

	BrandName        string `json:"brand_name"`
	BrandTagline     string `json:"brand_tagline"`
	BrandNiche       string `json:"brand_niche"`
	BrandWebsite     string `json:"brand_website"`
	BrandDescription string `json:"brand_description"`

	JourneyStatus        string    `json:"journey_status"`
	JourneyStatusDisplay string    `json:"journey_status_display"`
	HealthScore          string    `json:"health_score"`
	HealthScoreDisplay   string    `json:"health_score_display"`
	LastStatusChange     time.Time `json:"last_status_change"`
	PriorityLevel        int       `json:"priority_level"`

	InstagramHandle  string         `json:"instagram_handle"`
	YoutubeChannel   string         `json:"youtube_channel"`
	TiktokHandle     string         `json:"tiktok_handle"`
	TwitterHandle    string         `json:"twitter_handle"`
	LinkedinProfile  string         `json:"linkedin_profile"`
	OtherSocialLinks map[string]any `json:"other_social_links"`

	PrimaryCommunicationChannel string `json:"primary_communication_channel"`
	LastContactedDate           string `json:"last_contacted_date,omitempty"`
	NextFollowUpDate            string `json:"next_follow_up_date,omitempty"`
	CommunicationNotes          string `json:"communication_notes"`

	CustomFields  map[string]any `json:"custom_fields"`
	IsActive      bool           `json:"is_active"`
	InternalNotes string         `json:"internal_notes"`
	Tags          []string       `json:"tags"`

	CreatedByID     *string   `json:"created_by_id"`
	LastUpdatedByID *string   `json:"last_updated_by_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Milestones  []MilestoneResponse  `json:"milestones"`
	Credentials []CredentialResponse `json:"credentials"`
}

func NewCreatorDetail(c *db_models.Creator) CreatorDetail {
	d := CreatorDetail{
		ID:                          c.ID.String(),
		CreatorName:                 c.CreatorName,
		CreatorEmail:                c.CreatorEmail,
		CreatorPhone:                c.CreatorPhone,
		CreatorLocation:             c.CreatorLocation,
		CreatorTimezone:             c.CreatorTimezone,
		BrandName:                   c.BrandName,
		BrandTagline:                c.BrandTagline,
		BrandNiche:                  c.BrandNiche,
		BrandWebsite:                c.BrandWebsite,
		BrandDescription:            c.BrandDescription,
		JourneyStatus:               string(c.JourneyStatus),
		JourneyStatusDisplay:        c.JourneyStatus.Display(),
		HealthScore:                 string(c.HealthScore),
		HealthScoreDisplay:          c.HealthScore.Display(),
		LastStatusChange:            c.LastStatusChange,
		PriorityLevel:               c.PriorityLevel,
		InstagramHandle:             c.InstagramHandle,
		YoutubeChannel:              c.YoutubeChannel,
		TiktokHandle:                c.TiktokHandle,
		TwitterHandle:               c.TwitterHandle,
		LinkedinProfile:             c.LinkedinProfile,
		OtherSocialLinks:            orEmptyMap(c.OtherSocialLinks),
		PrimaryCommunicationChannel: c.PrimaryCommunicationChannel,
		LastContactedDate:           utils.FormatDate(c.LastContactedDate),
		NextFollowUpDate:            utils.FormatDate(c.NextFollowUpDate),
		CommunicationNotes:          c.CommunicationNotes,
		CustomFields:                orEmptyMap(c.CustomFields),
		IsActive:                    c.IsActive,
		InternalNotes:               c.InternalNotes,
		Tags:                        []string(c.Tags),
		CreatedByID:                 uuidString(c.CreatedByID),
		LastUpdatedByID:             uuidString(c.LastUpdatedByID),
		CreatedAt:                   c.CreatedAt,
		UpdatedAt:                   c.UpdatedAt,
		Milestones:                  make([]MilestoneResponse, 0, len(c.Milestones)),
		Credentials:                 make([]CredentialResponse, 0, len(c.Credentials)),
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	for i := range c.Milestones {
		d.Milestones = append(d.Milestones, NewMilestoneResponse(&c.Milestones[i]))
	}
	for i := range c.Credentials {
		d.Credentials = append(d.Credentials, NewCredentialResponse(&c.Credentials[i]))
	}
	return d
}
