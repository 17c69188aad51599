package controllers

import (
	"github.com/gin-gonic/gin"

	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get dashboard
// @Description Creator totals, counts per journey status and health score, recent updates and urgent projects
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	stats, err := d.dashboardService.Stats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Fetched dashboard successfully")
}

func (d *DashboardController) HealthSummary(c *gin.Context) {
	summary, err := d.dashboardService.HealthSummary(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Fetched health summary successfully")
}

func (d *DashboardController) StatusSummary(c *gin.Context) {
	summary, err := d.dashboardService.StatusSummary(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Fetched status summary successfully")
}
