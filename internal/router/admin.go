package router

import "github.com/gin-gonic/gin"

func (r *Router) adminRoutes(api *gin.RouterGroup, requireSession gin.HandlerFunc) {
	admin := api.Group("/admin")
	admin.Use(requireSession)
	{
		admin.GET("/users", r.adminHandler.Users)
		admin.GET("/all-students", r.adminHandler.AllStudents)
		admin.GET("/all-marks", r.adminHandler.AllMarks)
		admin.GET("/all-attendance", r.adminHandler.AllAttendance)
		admin.GET("/activities", r.adminHandler.Activities)
	}
}
