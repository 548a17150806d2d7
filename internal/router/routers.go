package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/student-api/config"
	"github.com/campusdesk/student-api/internal/handler"
	"github.com/campusdesk/student-api/internal/middleware"
	"github.com/campusdesk/student-api/internal/service"
)

type Router struct {
	authHandler       *handler.AuthHandler
	studentHandler    *handler.StudentHandler
	markHandler       *handler.MarkHandler
	attendanceHandler *handler.AttendanceHandler
	dashboardHandler  *handler.DashboardHandler
	adminHandler      *handler.AdminHandler
	healthHandler     *handler.HealthHandler

	sessions *service.SessionService
	config   *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	student *handler.StudentHandler,
	mark *handler.MarkHandler,
	attendance *handler.AttendanceHandler,
	dashboard *handler.DashboardHandler,
	admin *handler.AdminHandler,
	health *handler.HealthHandler,
	sessions *service.SessionService,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:       auth,
		studentHandler:    student,
		markHandler:       mark,
		attendanceHandler: attendance,
		dashboardHandler:  dashboard,
		adminHandler:      admin,
		healthHandler:     health,
		sessions:          sessions,
		config:            cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.ContextMiddleware("api"))
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Health)

		api.Use(middleware.RateLimit(300, time.Minute))

		requireSession := middleware.SessionAuth(r.sessions, r.config.Session.CookieName)

		r.authRoutes(api, requireSession)
		r.studentRoutes(api, requireSession)
		r.recordRoutes(api, requireSession)
		r.adminRoutes(api, requireSession)
	}

	return router
}
