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

type MarkHandler struct {
	markService *service.MarkService
}

func NewMarkHandler(markService *service.MarkService) *MarkHandler {
	return &MarkHandler{markService: markService}
}

// StudentMarks returns a student's mark entries and their aggregates
// in one body.
func (h *MarkHandler) StudentMarks(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "marks", "StudentMarks")

	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.markService.Report(ctx, studentID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *MarkHandler) Add(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "marks", "Add")

	var req dto.AddMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	mark, err := h.markService.Add(ctx, req.StudentID, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, mark)
}

func (h *MarkHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "marks", "Update")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	mark, err := h.markService.Update(ctx, id, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, mark)
}

func (h *MarkHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "marks", "Delete")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.markService.Delete(ctx, id); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Mark deleted"))
}

func (h *MarkHandler) Summary(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "marks", "Summary")

	rows, err := h.markService.Summary(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	if rows == nil {
		rows = []dto.MarksSummaryRow{}
	}

	c.JSON(http.StatusOK, rows)
}
