package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/cmd/fx/audit_fx"
	"studiocrm/cmd/fx/auth_fx"
	"studiocrm/cmd/fx/config_fx"
	"studiocrm/cmd/fx/controllers_fx"
	"studiocrm/cmd/fx/credential_fx"
	"studiocrm/cmd/fx/dashboard"
	"studiocrm/cmd/fx/db_fx"
	"studiocrm/cmd/fx/journey_fx"
	"studiocrm/cmd/fx/memcache_fx"
	"studiocrm/cmd/fx/milestone_fx"
	"studiocrm/cmd/fx/prompt_fx"
	"studiocrm/internal/config"
	"studiocrm/internal/infra"
)

// coreModules is everything below the HTTP layer.
func coreModules() fx.Option {
	return fx.Options(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		auth_fx.Module,
		audit_fx.Module,
		journey_fx.Module,
		credential_fx.Module,
		milestone_fx.Module,
		prompt_fx.Module,
		dashboard.Module,
	)
}

func runServer(*cobra.Command, []string) error {
	app := fx.New(
		coreModules(),
		controllers_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(migrateOnStart),
		fx.Invoke(StartServer),
	)
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

func migrateOnStart(db *gorm.DB, log *zap.Logger) error {
	if err := infra.Migrate(db); err != nil {
		return err
	}
	log.Info("Database schema is up to date")
	return nil
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr), zap.String("version", version))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
