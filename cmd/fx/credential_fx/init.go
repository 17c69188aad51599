package credential_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

var Module = fx.Provide(provideCredentialRepo, provideCredentialService)

func provideCredentialRepo(db *gorm.DB) repositories.CredentialRepository {
	return repositories.NewCredentialRepository(db)
}

func provideCredentialService(db *gorm.DB, credentials repositories.CredentialRepository, creators repositories.CreatorRepository, recorder *audit.Recorder, clock utils.Clock) services.CredentialServiceInterface {
	return services.NewCredentialService(db, credentials, creators, recorder, clock)
}
