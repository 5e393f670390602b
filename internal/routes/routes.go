package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/handlers"
	"github.com/BruksfildServices01/appointment-booking/internal/middleware"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
	"github.com/BruksfildServices01/appointment-booking/internal/web"
)

func RegisterRoutes(
	r *gin.Engine,
	provider handlers.BookingProvider,
	auditDB *gorm.DB,
	cfg *config.Config,
	log *slog.Logger,
	checks ...handlers.ReadyCheck,
) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	r.SetHTMLTemplate(web.Templates())

	// ======================================================
	// HANDLERS
	// ======================================================
	loc := timezone.Location(cfg.Timezone)
	guard := handlers.NewSubmissionGuard()

	webHandler := handlers.NewWebHandler(provider, guard, loc, log)
	apiHandler := handlers.NewBookingAPIHandler(provider, loc, log)
	healthHandler := handlers.NewHealthHandler(checks...)

	r.GET("/health", healthHandler.Health)
	r.GET("/readyz", healthHandler.Ready)

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.GET("/", webHandler.Home)
	r.GET("/book", webHandler.BookPage)
	r.POST("/book", webHandler.Book)

	admin := r.Group("/admin")
	{
		admin.GET("", webHandler.Admin)
		admin.POST("/services", webHandler.AddService)
		admin.POST("/services/:id/delete", webHandler.RemoveService)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/appointments", apiHandler.ListAppointments)
		api.POST("/appointments", apiHandler.CreateAppointment)

		api.GET("/services", apiHandler.ListServices)
		api.POST("/services", apiHandler.CreateService)
		api.DELETE("/services/:id", apiHandler.DeleteService)

		// audit rows exist only when events are written to postgres
		if auditDB != nil {
			api.GET("/audit-logs", handlers.NewAuditLogsHandler(auditDB, loc).List)
		}
	}
}
