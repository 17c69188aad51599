package services

import (
	"context"

	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/response_models"
	"studiocrm/internal/repositories"
)

const (
	dashboardRecentLimit = 5
	dashboardUrgentLimit = 10
)

type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*response_models.DashboardStats, error)
	HealthSummary(ctx context.Context) (*response_models.HealthSummary, error)
	StatusSummary(ctx context.Context) (map[string]int64, error)
}

type DashboardService struct {
	creators repositories.CreatorRepository
}

func NewDashboardService(creators repositories.CreatorRepository) DashboardServiceInterface {
	return &DashboardService{creators: creators}
}

func (s *DashboardService) Stats(ctx context.Context) (*response_models.DashboardStats, error) {
	total, err := s.creators.Count(ctx, false)
	if err != nil {
		return nil, translateErr(err)
	}
	active, err := s.creators.Count(ctx, true)
	if err != nil {
		return nil, translateErr(err)
	}
	byStatus, err := s.creators.CountByStatus(ctx)
	if err != nil {
		return nil, translateErr(err)
	}
	byHealth, err := s.creators.CountByHealth(ctx)
	if err != nil {
		return nil, translateErr(err)
	}

	recent, err := s.creators.ListRecentlyUpdated(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, translateErr(err)
	}
	urgent, err := s.creators.ListUrgent(ctx, dashboardUrgentLimit)
	if err != nil {
		return nil, translateErr(err)
	}

	recentItems, err := creatorListItems(ctx, s.creators, recent)
	if err != nil {
		return nil, err
	}
	urgentItems, err := creatorListItems(ctx, s.creators, urgent)
	if err != nil {
		return nil, err
	}

	return &response_models.DashboardStats{
		TotalCreators:      total,
		ActiveCreators:     active,
		OnboardingCount:    byStatus[db_models.JourneyOnboarding],
		BrandBuildingCount: byStatus[db_models.JourneyBrandBuilding],
		LaunchCount:        byStatus[db_models.JourneyLaunch],
		LiveCount:          byStatus[db_models.JourneyLive],
		PausedCount:        byStatus[db_models.JourneyPaused],
		ClosedCount:        byStatus[db_models.JourneyClosed],
		RedHealthCount:     byHealth[db_models.HealthRed],
		YellowHealthCount:  byHealth[db_models.HealthYellow],
		GreenHealthCount:   byHealth[db_models.HealthGreen],
		RecentUpdates:      recentItems,
		UrgentProjects:     urgentItems,
	}, nil
}

func (s *DashboardService) HealthSummary(ctx context.Context) (*response_models.HealthSummary, error) {
	byHealth, err := s.creators.CountByHealth(ctx)
	if err != nil {
		return nil, translateErr(err)
	}
	return &response_models.HealthSummary{
		Red:    byHealth[db_models.HealthRed],
		Yellow: byHealth[db_models.HealthYellow],
		Green:  byHealth[db_models.HealthGreen],
	}, nil
}

// StatusSummary counts creators under every journey status, zeros included.
func (s *DashboardService) StatusSummary(ctx context.Context) (map[string]int64, error) {
	byStatus, err := s.creators.CountByStatus(ctx)
	if err != nil {
		return nil, translateErr(err)
	}

	out := make(map[string]int64, len(db_models.JourneyStatuses))
	for _, status := range db_models.JourneyStatuses {
		out[string(status)] = byStatus[status]
	}
	return out, nil
}
