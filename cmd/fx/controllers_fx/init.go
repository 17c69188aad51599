package controllers_fx

import (
	"go.uber.org/fx"

	"studiocrm/internal/api"
	"studiocrm/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewCreatorController),
	fx.Provide(controllers.NewCredentialController),
	fx.Provide(controllers.NewMilestoneController),
	fx.Provide(controllers.NewAuditLogController),
	fx.Provide(controllers.NewDeliverableController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(api.NewRouter))
