package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"studiocrm/internal/models/request_models"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

type CreatorController struct {
	creatorService services.CreatorServiceInterface
	clock          utils.Clock
}

func NewCreatorController(creatorService services.CreatorServiceInterface, clock utils.Clock) *CreatorController {
	return &CreatorController{
		creatorService: creatorService,
		clock:          clock,
	}
}

// ListCreators godoc
// @Summary List creators
// @Description Filterable, orderable and paginated creator list with milestone and credential counts
// @Tags Creators
// @Produce json
// @Param journey_status query string false "Exact status or comma separated list"
// @Param health_score query string false "Exact score or comma separated list"
// @Param search query string false "Substring over name, brand, email and niche"
// @Param ordering query string false "e.g. -last_status_change,brand_name"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /creators [get]
func (cc *CreatorController) ListCreators(c *gin.Context) {
	var query request_models.CreatorListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := cc.creatorService.ListCreators(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Fetched creators successfully")
}

// GetCreator godoc
// @Summary Get creator
// @Description Creator detail with milestones and redacted credentials
// @Tags Creators
// @Produce json
// @Param id path string true "Creator ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /creators/{id} [get]
func (cc *CreatorController) GetCreator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	creator, err := cc.creatorService.GetCreator(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, creator, "Fetched creator successfully")
}

func (cc *CreatorController) CreateCreator(c *gin.Context) {
	var req request_models.CreateCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creator, err := cc.creatorService.CreateCreator(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, creator, "Creator created successfully")
}

// UpdateCreator handles both PUT and PATCH; absent fields are left alone.
func (cc *CreatorController) UpdateCreator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.UpdateCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creator, err := cc.creatorService.UpdateCreator(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, creator, "Creator updated successfully")
}

func (cc *CreatorController) DeleteCreator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := cc.creatorService.DeleteCreator(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Creator deleted successfully")
}

// UpdateJourneyStatus godoc
// @Summary Update journey status
// @Description Move a creator to another journey status and refresh its health score
// @Tags Creators
// @Accept json
// @Produce json
// @Param id path string true "Creator ID"
// @Param request body request_models.UpdateJourneyStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /creators/{id}/update_journey_status [post]
func (cc *CreatorController) UpdateJourneyStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.UpdateJourneyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creator, err := cc.creatorService.UpdateJourneyStatus(c.Request.Context(), actorFrom(c), id, req.JourneyStatus, req.Notes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, creator, "Journey status updated")
}

func (cc *CreatorController) ListUrgent(c *gin.Context) {
	creators, err := cc.creatorService.ListUrgent(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, creators, "Fetched urgent creators successfully")
}

func (cc *CreatorController) ListByStatus(c *gin.Context) {
	groups, err := cc.creatorService.ListByStatus(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, groups, "Fetched creators by status successfully")
}

// ExportCreators streams the filtered list as CSV instead of the JSON envelope.
func (cc *CreatorController) ExportCreators(c *gin.Context) {
	var query request_models.CreatorListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := cc.creatorService.ExportCSV(c.Request.Context(), query, &buf); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("creators-%s.csv", cc.clock.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
