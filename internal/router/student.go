package router

import "github.com/gin-gonic/gin"

func (r *Router) studentRoutes(api *gin.RouterGroup, requireSession gin.HandlerFunc) {
	students := api.Group("/students")
	students.Use(requireSession)
	{
		students.GET("", r.studentHandler.List)
		students.GET("/:id", r.studentHandler.Get)
		students.POST("", r.studentHandler.Create)
		students.PUT("/:id", r.studentHandler.Update)
		students.DELETE("/:id", r.studentHandler.Delete)
	}
}
