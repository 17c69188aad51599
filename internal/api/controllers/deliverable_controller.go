package controllers

import (
	"github.com/gin-gonic/gin"

	"studiocrm/internal/models/request_models"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

type DeliverableController struct {
	deliverableService services.DeliverableServiceInterface
}

func NewDeliverableController(deliverableService services.DeliverableServiceInterface) *DeliverableController {
	return &DeliverableController{
		deliverableService: deliverableService,
	}
}

func (dc *DeliverableController) ListDeliverables(c *gin.Context) {
	var query request_models.DeliverableListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := dc.deliverableService.ListDeliverables(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Fetched deliverables successfully")
}

func (dc *DeliverableController) GetDeliverable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	d, err := dc.deliverableService.GetDeliverable(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, d, "Fetched deliverable successfully")
}

func (dc *DeliverableController) CreateDeliverable(c *gin.Context) {
	var req request_models.CreateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	d, err := dc.deliverableService.CreateDeliverable(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, d, "Deliverable created successfully")
}

// GenerateDeliverable godoc
// @Summary Generate deliverable content
// @Description Calls the configured AI provider. PENDING or FAILED deliverables only
// @Tags Deliverables
// @Produce json
// @Param id path string true "Deliverable ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /deliverables/{id}/generate [post]
func (dc *DeliverableController) GenerateDeliverable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	d, err := dc.deliverableService.Generate(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, d, "Deliverable generated successfully")
}

func (dc *DeliverableController) DeleteDeliverable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := dc.deliverableService.DeleteDeliverable(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Deliverable deleted successfully")
}
