package controllers

import (
	"github.com/gin-gonic/gin"

	"studiocrm/internal/models/request_models"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

type MilestoneController struct {
	milestoneService services.MilestoneServiceInterface
}

func NewMilestoneController(milestoneService services.MilestoneServiceInterface) *MilestoneController {
	return &MilestoneController{
		milestoneService: milestoneService,
	}
}

func (mc *MilestoneController) ListMilestones(c *gin.Context) {
	var query request_models.MilestoneListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := mc.milestoneService.ListMilestones(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Fetched milestones successfully")
}

func (mc *MilestoneController) ListByCreator(c *gin.Context) {
	milestones, err := mc.milestoneService.ListByCreator(c.Request.Context(), c.Query("creator_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, milestones, "Fetched milestones successfully")
}

func (mc *MilestoneController) GetMilestone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := mc.milestoneService.GetMilestone(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, m, "Fetched milestone successfully")
}

func (mc *MilestoneController) CreateMilestone(c *gin.Context) {
	var req request_models.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	m, err := mc.milestoneService.CreateMilestone(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, m, "Milestone created successfully")
}

func (mc *MilestoneController) UpdateMilestone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	m, err := mc.milestoneService.UpdateMilestone(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, m, "Milestone updated successfully")
}

func (mc *MilestoneController) DeleteMilestone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := mc.milestoneService.DeleteMilestone(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Milestone deleted successfully")
}

func (mc *MilestoneController) MarkComplete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := mc.milestoneService.MarkComplete(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, m, "Milestone marked complete")
}
