package journey_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

// Module provides creators, whose journey status drives health scoring.
var Module = fx.Provide(provideCreatorRepo, provideCreatorService)

func provideCreatorRepo(db *gorm.DB) repositories.CreatorRepository {
	return repositories.NewCreatorRepository(db)
}

func provideCreatorService(
	db *gorm.DB,
	creators repositories.CreatorRepository,
	credentials repositories.CredentialRepository,
	milestones repositories.MilestoneRepository,
	deliverables repositories.DeliverableRepository,
	recorder *audit.Recorder,
	clock utils.Clock,
) services.CreatorServiceInterface {
	return services.NewCreatorService(db, creators, credentials, milestones, deliverables, recorder, clock)
}
