package controllers

import (
	"github.com/gin-gonic/gin"

	"studiocrm/internal/models/request_models"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

type AuditLogController struct {
	auditService services.AuditServiceInterface
}

func NewAuditLogController(auditService services.AuditServiceInterface) *AuditLogController {
	return &AuditLogController{
		auditService: auditService,
	}
}

// ListAuditLogs godoc
// @Summary List audit log entries
// @Description Newest first. Filter by action_type, target_model or user_id
// @Tags AuditLogs
// @Produce json
// @Param action_type query string false "CREATE, UPDATE, DELETE, VIEW_CREDENTIAL or GENERATE_DELIVERABLE"
// @Param target_model query string false "Creator, Credential or AIDeliverable"
// @Param user_id query string false "Actor user ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (ac *AuditLogController) ListAuditLogs(c *gin.Context) {
	var query request_models.AuditLogListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := ac.auditService.ListAuditLogs(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Fetched audit logs successfully")
}

func (ac *AuditLogController) GetAuditLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	entry, err := ac.auditService.GetAuditLog(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Fetched audit log successfully")
}

func (ac *AuditLogController) Recent(c *gin.Context) {
	entries, err := ac.auditService.Recent(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "Fetched recent audit logs successfully")
}

func (ac *AuditLogController) ByCreator(c *gin.Context) {
	entries, err := ac.auditService.ByCreator(c.Request.Context(), c.Query("creator_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "Fetched audit logs successfully")
}

// Immutable answers every write against an audit entry.
func (ac *AuditLogController) Immutable(c *gin.Context) {
	utils.HandleServiceError(c, utils.ErrAuditImmutable)
}
