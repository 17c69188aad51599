package request_models

type CreateCreatorRequest struct {
	CreatorName     string  `json:"creator_name" binding:"required,max=200"`
	CreatorEmail    string  `json:"creator_email" binding:"required,email,max=254"`
	CreatorPhone    *string `json:"creator_phone" binding:"omitempty,max=20"`
	CreatorLocation string  `json:"creator_location" binding:"max=200"`
	CreatorTimezone string  `json:"creator_timezone" binding:"max=50"`

	BrandName        string `json:"brand_name" binding:"required,max=200"`
	BrandTagline     string `json:"brand_tagline" binding:"max=500"`
	BrandNiche       string `json:"brand_niche" binding:"required,max=200"`
	BrandWebsite     string `json:"brand_website" binding:"omitempty,url,max=500"`
	BrandDescription string `json:"brand_description"`

	JourneyStatus string `json:"journey_status" binding:"omitempty,oneof=ONBOARDING BRAND_BUILDING LAUNCH LIVE PAUSED CLOSED"`
	PriorityLevel *int   `json:"priority_level" binding:"omitempty,min=1,max=5"`

	InstagramHandle  string         `json:"instagram_handle" binding:"max=100"`
	YoutubeChannel   string         `json:"youtube_channel" binding:"omitempty,url,max=500"`
	TiktokHandle     string         `json:"tiktok_handle" binding:"max=100"`
	TwitterHandle    string         `json:"twitter_handle" binding:"max=100"`
	LinkedinProfile  string         `json:"linkedin_profile" binding:"omitempty,url,max=500"`
	OtherSocialLinks map[string]any `json:"other_social_links"`

	PrimaryCommunicationChannel string `json:"primary_communication_channel" binding:"max=50"`
	LastContactedDate           string `json:"last_contacted_date"`
	NextFollowUpDate            string `json:"next_follow_up_date"`
	CommunicationNotes          string `json:"communication_notes"`

	CustomFields  map[string]any `json:"custom_fields"`
	IsActive      *bool          `json:"is_active"`
	InternalNotes string         `json:"internal_notes"`
	Tags          []string       `json:"tags"`
}

// UpdateCreatorRequest is a partial update: nil fields are left untouched.
// An empty date string clears the date. health_score is never accepted.
type UpdateCreatorRequest struct {
	CreatorName     *string `json:"creator_name" binding:"omitempty,min=1,max=200"`
	CreatorEmail    *string `json:"creator_email" binding:"omitempty,email,max=254"`
	CreatorPhone    *string `json:"creator_phone" binding:"omitempty,max=20"`
	CreatorLocation *string `json:"creator_location" binding:"omitempty,max=200"`
	CreatorTimezone *string `json:"creator_timezone" binding:"omitempty,max=50"`

	BrandName        *string `json:"brand_name" binding:"omitempty,min=1,max=200"`
	BrandTagline     *string `json:"brand_tagline" binding:"omitempty,max=500"`
	BrandNiche       *string `json:"brand_niche" binding:"omitempty,min=1,max=200"`
	BrandWebsite     *string `json:"brand_website" binding:"omitempty,max=500"`
	BrandDescription *string `json:"brand_description"`

	JourneyStatus *string `json:"journey_status" binding:"omitempty,oneof=ONBOARDING BRAND_BUILDING LAUNCH LIVE PAUSED CLOSED"`
	PriorityLevel *int    `json:"priority_level" binding:"omitempty,min=1,max=5"`

	InstagramHandle  *string         `json:"instagram_handle" binding:"omitempty,max=100"`
	YoutubeChannel   *string         `json:"youtube_channel" binding:"omitempty,max=500"`
	TiktokHandle     *string         `json:"tiktok_handle" binding:"omitempty,max=100"`
	TwitterHandle    *string         `json:"twitter_handle" binding:"omitempty,max=100"`
	LinkedinProfile  *string         `json:"linkedin_profile" binding:"omitempty,max=500"`
	OtherSocialLinks *map[string]any `json:"other_social_links"`

	PrimaryCommunicationChannel *string `json:"primary_communication_channel" binding:"omitempty,max=50"`
	LastContactedDate           *string `json:"last_contacted_date"`
	NextFollowUpDate            *string `json:"next_follow_up_date"`
	CommunicationNotes          *string `json:"communication_notes"`

	CustomFields  *map[string]any `json:"custom_fields"`
	IsActive      *bool           `json:"is_active"`
	InternalNotes *string         `json:"internal_notes"`
	Tags          *[]string       `json:"tags"`
}

type UpdateJourneyStatusRequest struct {
	JourneyStatus string `json:"journey_status" binding:"required,oneof=ONBOARDING BRAND_BUILDING LAUNCH LIVE PAUSED CLOSED"`
	Notes         string `json:"notes"`
}

// CreatorListQuery mirrors the list filters. Status and health accept a
// comma separated list.
type CreatorListQuery struct {
	JourneyStatus      string `form:"journey_status"`
	JourneyStatusIn    string `form:"journey_status__in"`
	HealthScore        string `form:"health_score"`
	HealthScoreIn      string `form:"health_score__in"`
	BrandNiche         string `form:"brand_niche"`
	BrandNicheContains string `form:"brand_niche__icontains"`
	IsActive           *bool  `form:"is_active"`
	PriorityLevel      *int   `form:"priority_level"`
	PriorityLevelGTE   *int   `form:"priority_level__gte"`
	PriorityLevelLTE   *int   `form:"priority_level__lte"`
	UrgentOnly         bool   `form:"urgent_only"`
	ActiveOnly         bool   `form:"active_only"`
	Search             string `form:"search"`
	Ordering           string `form:"ordering"`
	Page               int    `form:"page"`
	PageSize           int    `form:"pageSize"`
}
