package prompt_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/config"
	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
	"studiocrm/pkg/ai"
	"studiocrm/pkg/utils"
)

// Module provides the AI generator and the deliverables that are prompted through it.
var Module = fx.Provide(
	ProvideGenerator,
	ProvideDeliverableRepo,
	ProvideDeliverableService)

// ProvideGenerator creates a generator for the configured AI provider.
func ProvideGenerator(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (ai.Generator, error) {
	generator, err := ai.NewGenerator(context.Background(), ai.Config{
		Provider:    cfg.AIProvider,
		OpenAIKey:   cfg.OpenAIAPIKey,
		OpenAIModel: cfg.OpenAIModel,
		GeminiKey:   cfg.GeminiAPIKey,
		GeminiModel: cfg.GeminiModel,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Initialized AI generator",
		zap.String("provider", generator.Provider()),
		zap.String("model", generator.Model()))

	if closer, ok := generator.(interface{ Close() error }); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return generator, nil
}

func ProvideDeliverableRepo(db *gorm.DB) repositories.DeliverableRepository {
	return repositories.NewDeliverableRepository(db)
}

func ProvideDeliverableService(
	db *gorm.DB,
	deliverables repositories.DeliverableRepository,
	creators repositories.CreatorRepository,
	generator ai.Generator,
	recorder *audit.Recorder,
	clock utils.Clock,
) services.DeliverableServiceInterface {
	return services.NewDeliverableService(db, deliverables, creators, generator, recorder, clock)
}
