package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/service"
	ctxutil "github.com/campusdesk/student-api/pkg/context"
	"github.com/campusdesk/student-api/pkg/validation"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) Upsert(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "attendance", "Upsert")

	var req dto.UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	record, err := h.attendanceService.Upsert(ctx, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, record)
}

// StudentAttendance returns a student's records and their aggregates
// in one body, optionally scoped by a date range.
func (h *AttendanceHandler) StudentAttendance(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "attendance", "StudentAttendance")

	studentID, ok := parseIDParam(c, "studentId")
	if !ok {
		return
	}

	var filter dto.AttendanceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	report, err := h.attendanceService.Report(ctx, studentID, filter)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AttendanceHandler) Summary(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "attendance", "Summary")

	rows, err := h.attendanceService.Summary(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	if rows == nil {
		rows = []dto.AttendanceSummaryRow{}
	}

	c.JSON(http.StatusOK, rows)
}
