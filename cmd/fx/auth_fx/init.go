package auth_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"studiocrm/internal/config"
	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
	mem "studiocrm/pkg/memcache"
	"studiocrm/pkg/utils"
)

var Module = fx.Provide(
	provideTokenIssuer, provideUserRepo, provideAuthService)

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
}

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAuthService(userRepo repositories.UserRepository, issuer *utils.TokenIssuer, revoked mem.RevokedTokenStore, clock utils.Clock) services.AuthServiceInterface {
	return services.NewAuthService(userRepo, issuer, revoked, clock)
}
