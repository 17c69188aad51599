package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/internal/config"
	"studiocrm/internal/infra"
	"studiocrm/pkg/fieldcrypt"
)

var Module = fx.Provide(
	infra.NewCipher,
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, cipher *fieldcrypt.Cipher) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg, cipher)
	if err != nil {
		return nil, err
	}
	log.Info("Database connected", zap.String("driver", cfg.DBDriver))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db, log)
			return nil
		},
	})
	return db, nil
}
