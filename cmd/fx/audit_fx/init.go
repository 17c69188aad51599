package audit_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
)

var Module = fx.Provide(
	provideAuditLogRepo, provideRecorder, provideAuditService)

func provideAuditLogRepo(db *gorm.DB) repositories.AuditLogRepository {
	return repositories.NewAuditLogRepository(db)
}

func provideRecorder(auditRepo repositories.AuditLogRepository) *audit.Recorder {
	return audit.NewRecorder(auditRepo)
}

func provideAuditService(auditRepo repositories.AuditLogRepository) services.AuditServiceInterface {
	return services.NewAuditService(auditRepo)
}
