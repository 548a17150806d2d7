package router

import "github.com/gin-gonic/gin"

func (r *Router) recordRoutes(api *gin.RouterGroup, requireSession gin.HandlerFunc) {
	api.GET("/marks-summary", requireSession, r.markHandler.Summary)
	api.GET("/attendance-summary", requireSession, r.attendanceHandler.Summary)

	marks := api.Group("/marks")
	marks.Use(requireSession)
	{
		marks.POST("", r.markHandler.Add)
		marks.GET("/:id", r.markHandler.StudentMarks)
		marks.PUT("/:id", r.markHandler.Update)
		marks.DELETE("/:id", r.markHandler.Delete)
	}

	attendance := api.Group("/attendance")
	attendance.Use(requireSession)
	{
		attendance.POST("", r.attendanceHandler.Upsert)
		attendance.GET("/:studentId", r.attendanceHandler.StudentAttendance)
	}

	dashboard := api.Group("/dashboard")
	dashboard.Use(requireSession)
	{
		dashboard.GET("/stats", r.dashboardHandler.Stats)
		dashboard.GET("/department-chart", r.dashboardHandler.DepartmentChart)
		dashboard.GET("/year-chart", r.dashboardHandler.YearChart)
		dashboard.GET("/recent-activities", r.dashboardHandler.RecentActivities)
	}
}
