package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/student-api/internal/constants"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/service"
	ctxutil "github.com/campusdesk/student-api/pkg/context"
	"github.com/campusdesk/student-api/pkg/logger"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "dashboard", "Stats")

	stats, err := h.dashboardService.Stats(ctx)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to build dashboard stats").Err(err).Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) DepartmentChart(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "dashboard", "DepartmentChart")

	rows, err := h.dashboardService.DepartmentChart(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *DashboardHandler) YearChart(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "dashboard", "YearChart")

	rows, err := h.dashboardService.YearChart(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "dashboard", "RecentActivities")

	entries, err := h.dashboardService.RecentActivities(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, entries)
}
