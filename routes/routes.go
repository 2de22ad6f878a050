package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"schedula/handlers"
	"schedula/middleware"
)

// HandlerBundle groups the endpoint handlers for route registration.
type HandlerBundle struct {
	Scheduling *handlers.SchedulingHandler
	Directory  *handlers.DirectoryHandler
}

// RegisterAvailabilityRoutes registers the availability read path.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/availability", hb.Scheduling.GetAvailability)
}

// RegisterAppointmentRoutes registers the booking lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.POST("", hb.Scheduling.BookAppointment)
		api.PUT("/:id", hb.Scheduling.EditAppointment)
		api.PUT("/:id/cancel", hb.Scheduling.CancelAppointment)
	}
}

// RegisterBlockedTimeRoutes registers provider blocked-time endpoints. These
// mutate provider calendars, so they require an authenticated provider token.
func RegisterBlockedTimeRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/blocked-times")
	{
		api.Use(middleware.JWTAuthMiddleware("provider"))
		api.POST("", hb.Scheduling.BlockTime)
		api.PUT("/:id/cancel", hb.Scheduling.CancelBlockedTime)
		api.DELETE("/:id", hb.Scheduling.DeleteBlockedTime)
	}
}

// RegisterAdminRoutes sets up the directory CRUD surface behind the admin key.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.AdminAuthMiddleware())

		admin.POST("/companies", hb.Directory.CreateCompany)
		admin.GET("/companies/:id", hb.Directory.GetCompany)
		admin.PUT("/companies/:id", hb.Directory.UpdateCompany)
		admin.PUT("/companies/:id/working-hours", hb.Directory.UpdateCompanyWorkingHours)
		admin.GET("/companies/:id/services", hb.Directory.GetCompanyServices)

		admin.POST("/providers", hb.Directory.CreateProvider)
		admin.GET("/providers/:id", hb.Directory.GetProvider)
		admin.PUT("/providers/:id", hb.Directory.UpdateProvider)
		admin.PUT("/providers/:id/working-hours", hb.Directory.UpdateProviderWorkingHours)
		admin.POST("/providers/:id/token", hb.Directory.IssueProviderToken)
		admin.DELETE("/providers/:id", hb.Directory.DeleteProvider)

		admin.POST("/services", hb.Directory.CreateService)
		admin.GET("/services/:id", hb.Directory.GetService)
		admin.PUT("/services/:id", hb.Directory.UpdateService)
		admin.DELETE("/services/:id", hb.Directory.DeleteService)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterBlockedTimeRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
