package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
	"github.com/campusdesk/student-api/internal/repository"
	"github.com/campusdesk/student-api/internal/service"
	ctxutil "github.com/campusdesk/student-api/pkg/context"
)

// AdminHandler serves the admin panel data: registered accounts, full
// record dumps and the recent activity feed.
type AdminHandler struct {
	users      *repository.UserRepository
	students   *repository.StudentRepository
	marks      *repository.MarkRepository
	attendance *repository.AttendanceRepository
	activity   *service.ActivityService
}

func NewAdminHandler(
	users *repository.UserRepository,
	students *repository.StudentRepository,
	marks *repository.MarkRepository,
	attendance *repository.AttendanceRepository,
	activity *service.ActivityService,
) *AdminHandler {
	return &AdminHandler{
		users:      users,
		students:   students,
		marks:      marks,
		attendance: attendance,
		activity:   activity,
	}
}

func (h *AdminHandler) Users(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "admin", "Users")

	users, err := h.users.List(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	if users == nil {
		users = []model.User{}
	}

	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) AllStudents(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "admin", "AllStudents")

	students, err := h.students.List(ctx, dto.StudentListFilter{})
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	if students == nil {
		students = []model.Student{}
	}

	c.JSON(http.StatusOK, students)
}

func (h *AdminHandler) AllMarks(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "admin", "AllMarks")

	marks, err := h.marks.ListAll(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	if marks == nil {
		marks = []model.Mark{}
	}

	c.JSON(http.StatusOK, marks)
}

func (h *AdminHandler) AllAttendance(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "admin", "AllAttendance")

	records, err := h.attendance.ListAll(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}

	c.JSON(http.StatusOK, records)
}

func (h *AdminHandler) Activities(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "admin", "Activities")

	limit := constants.RecentActivityLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := h.activity.Recent(ctx, limit)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	if entries == nil {
		entries = []model.ActivityLog{}
	}

	c.JSON(http.StatusOK, entries)
}
