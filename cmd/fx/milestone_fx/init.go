package milestone_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

var Module = fx.Provide(provideMilestoneRepo, provideMilestoneService)

func provideMilestoneRepo(db *gorm.DB) repositories.MilestoneRepository {
	return repositories.NewMilestoneRepository(db)
}

func provideMilestoneService(milestones repositories.MilestoneRepository, creators repositories.CreatorRepository, clock utils.Clock) services.MilestoneServiceInterface {
	return services.NewMilestoneService(milestones, creators, clock)
}
