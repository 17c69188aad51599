package response_models

type DashboardStats struct {
	TotalCreators  int64 `json:"total_creators"`
	ActiveCreators int64 `json:"active_creators"`

	OnboardingCount    int64 `json:"onboarding_count"`
	BrandBuildingCount int64 `json:"brand_building_count"`
	LaunchCount        int64 `json:"launch_count"`
	LiveCount          int64 `json:"live_count"`
	PausedCount        int64 `json:"paused_count"`
	ClosedCount        int64 `json:"closed_count"`

	RedHealthCount    int64 `json:"red_health_count"`
	YellowHealthCount int64 `json:"yellow_health_count"`
	GreenHealthCount  int64 `json:"green_health_count"`

	RecentUpdates  []CreatorListItem `json:"recent_updates"`
	UrgentProjects []CreatorListItem `json:"urgent_projects"`
}

type HealthSummary struct {
	Red    int64 `json:"red"`
	Yellow int64 `json:"yellow"`
	Green  int64 `json:"green"`
}
