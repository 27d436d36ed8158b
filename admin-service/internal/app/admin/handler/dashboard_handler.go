package handler

import (
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DashboardHandler дашборд, бейджи навигации, справочники форм и журнал действий
type DashboardHandler struct {
	dashboardService service.DashboardServiceInterface
	optionsService   service.OptionsServiceInterface
	activityService  service.ActivityServiceInterface
	validator        *validator.Validate
}

func NewDashboardHandler(
	dashboardService service.DashboardServiceInterface,
	optionsService service.OptionsServiceInterface,
	activityService service.ActivityServiceInterface,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		optionsService:   optionsService,
		activityService:  activityService,
		validator:        newValidator(),
	}
}

// Stats обрабатывает GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to get dashboard stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Badges обрабатывает GET /dashboard/badges
func (h *DashboardHandler) Badges(c *gin.Context) {
	badges, err := h.dashboardService.Badges(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to get navigation badges")
		return
	}

	c.JSON(http.StatusOK, badges)
}

// Options обрабатывает GET /options/:resource
func (h *DashboardHandler) Options(c *gin.Context) {
	options, err := h.optionsService.Get(c.Request.Context(), c.Param("resource"))
	if err != nil {
		writeServiceError(c, err, "Failed to get options")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": options})
}

// Activity обрабатывает GET /activity
func (h *DashboardHandler) Activity(c *gin.Context) {
	var query entity.ActivityQuery
	if !bindQuery(c, h.validator, &query) {
		return
	}

	entries, err := h.activityService.Recent(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, err, "Failed to get activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
