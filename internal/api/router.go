package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/internal/api/controllers"
	"studiocrm/internal/config"
	"studiocrm/internal/infra"
	"studiocrm/internal/models/db_models"
	"studiocrm/pkg/memcache"
	"studiocrm/pkg/middleware"
	"studiocrm/pkg/utils"
)

type RouterParams struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	DB      *gorm.DB
	Issuer  *utils.TokenIssuer
	Revoked memcache.RevokedTokenStore

	Auth         *controllers.AuthController
	Creators     *controllers.CreatorController
	Credentials  *controllers.CredentialController
	Milestones   *controllers.MilestoneController
	AuditLogs    *controllers.AuditLogController
	Deliverables *controllers.DeliverableController
	Dashboard    *controllers.DashboardController
}

func NewRouter(p RouterParams) *gin.Engine {
	if p.Config.GinMode != "" {
		gin.SetMode(p.Config.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware(p.Logger))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(p.Config.AllowedOrigins()))

	r.GET("/health", func(c *gin.Context) {
		if err := infra.Ping(c.Request.Context(), p.DB); err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.RespondSuccess(c, gin.H{"database": "ok"}, "healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r.Group("/api/v1"), p)
	return r
}

func RegisterRoutes(v1 *gin.RouterGroup, p RouterParams) {
	admin := string(db_models.RoleAdmin)
	operator := string(db_models.RoleOperator)

	authn := middleware.JWTAuthMiddleware(p.Issuer, p.Revoked)
	writers := middleware.RoleMiddleware(admin, operator)
	adminOnly := middleware.RoleMiddleware(admin)

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", p.Auth.Login)
	authGroup.POST("/logout", authn, p.Auth.Logout)
	authGroup.GET("/me", authn, p.Auth.Me)

	users := v1.Group("/users", authn, adminOnly)
	users.GET("", p.Auth.ListUsers)
	users.POST("", p.Auth.CreateUser)

	creators := v1.Group("/creators", authn)
	creators.GET("", p.Creators.ListCreators)
	creators.GET("/urgent", p.Creators.ListUrgent)
	creators.GET("/by_status", p.Creators.ListByStatus)
	creators.GET("/export", p.Creators.ExportCreators)
	creators.GET("/:id", p.Creators.GetCreator)
	creators.POST("", writers, p.Creators.CreateCreator)
	creators.PUT("/:id", writers, p.Creators.UpdateCreator)
	creators.PATCH("/:id", writers, p.Creators.UpdateCreator)
	creators.DELETE("/:id", writers, p.Creators.DeleteCreator)
	creators.POST("/:id/update_journey_status", writers, p.Creators.UpdateJourneyStatus)

	credentials := v1.Group("/credentials", authn)
	credentials.GET("", p.Credentials.ListCredentials)
	credentials.GET("/:id", p.Credentials.GetCredential)
	credentials.POST("", writers, p.Credentials.CreateCredential)
	credentials.PUT("/:id", writers, p.Credentials.UpdateCredential)
	credentials.PATCH("/:id", writers, p.Credentials.UpdateCredential)
	credentials.DELETE("/:id", writers, p.Credentials.DeleteCredential)
	credentials.POST("/:id/reveal", adminOnly, p.Credentials.RevealCredential)

	milestones := v1.Group("/milestones", authn)
	milestones.GET("", p.Milestones.ListMilestones)
	milestones.GET("/by_creator", p.Milestones.ListByCreator)
	milestones.GET("/:id", p.Milestones.GetMilestone)
	milestones.POST("", writers, p.Milestones.CreateMilestone)
	milestones.PUT("/:id", writers, p.Milestones.UpdateMilestone)
	milestones.PATCH("/:id", writers, p.Milestones.UpdateMilestone)
	milestones.DELETE("/:id", writers, p.Milestones.DeleteMilestone)
	milestones.POST("/:id/mark_complete", writers, p.Milestones.MarkComplete)

	auditLogs := v1.Group("/audit-logs", authn)
	auditLogs.GET("", p.AuditLogs.ListAuditLogs)
	auditLogs.GET("/recent", p.AuditLogs.Recent)
	auditLogs.GET("/by_creator", p.AuditLogs.ByCreator)
	auditLogs.GET("/:id", p.AuditLogs.GetAuditLog)
	auditLogs.POST("", p.AuditLogs.Immutable)
	auditLogs.PUT("/:id", p.AuditLogs.Immutable)
	auditLogs.PATCH("/:id", p.AuditLogs.Immutable)
	auditLogs.DELETE("/:id", p.AuditLogs.Immutable)

	deliverables := v1.Group("/deliverables", authn)
	deliverables.GET("", p.Deliverables.ListDeliverables)
	deliverables.GET("/:id", p.Deliverables.GetDeliverable)
	deliverables.POST("", writers, p.Deliverables.CreateDeliverable)
	deliverables.POST("/:id/generate", writers, p.Deliverables.GenerateDeliverable)
	deliverables.DELETE("/:id", writers, p.Deliverables.DeleteDeliverable)

	dashboard := v1.Group("/dashboard", authn)
	dashboard.GET("", p.Dashboard.GetDashboard)
	dashboard.GET("/health_summary", p.Dashboard.HealthSummary)
	dashboard.GET("/status_summary", p.Dashboard.StatusSummary)
}
