package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"studiocrm/internal/config"
	"studiocrm/pkg/logger"
	"studiocrm/pkg/utils"
)

var Module = fx.Provide(
	config.LoadConfig,
	provideLogger,
	provideClock,
)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.NewLogger(logger.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

func provideClock() utils.Clock {
	return utils.SystemClock{}
}
