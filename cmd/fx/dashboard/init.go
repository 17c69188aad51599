package dashboard

import (
	"go.uber.org/fx"

	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
)

var Module = fx.Provide(
	provideDashboardService,
)

func provideDashboardService(creators repositories.CreatorRepository) services.DashboardServiceInterface {
	return services.NewDashboardService(creators)
}
