package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vitalpoint/clinic-scheduler/internal/audit"
	"github.com/vitalpoint/clinic-scheduler/internal/config"
	"github.com/vitalpoint/clinic-scheduler/internal/handlers"
	"github.com/vitalpoint/clinic-scheduler/internal/infra/cache"
	infraRepo "github.com/vitalpoint/clinic-scheduler/internal/infra/repository"
	"github.com/vitalpoint/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/vitalpoint/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/vitalpoint/clinic-scheduler/internal/usecase/availability"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	loc *time.Location,
	zlog *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, zlog)

	var monthCache *cache.MonthCache
	if rdb != nil {
		monthCache = cache.NewMonthCache(rdb, 10*time.Minute, zlog)
	}

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	resolveSlotsUC := ucAvailability.NewResolveSlots(availabilityRepo, loc, zlog)
	resolveMonthUC := ucAvailability.NewResolveMonth(availabilityRepo, loc, zlog)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		availabilityRepo,
		loc,
		cfg.DefaultSlotMinutes,
		auditDispatcher,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
		loc,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
		loc,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		resolveSlotsUC,
		resolveMonthUC,
		monthCache,
		cfg.DefaultSlotMinutes,
	)

	scheduleHandler := handlers.NewScheduleHandler(db, auditDispatcher, monthCache)
	blockHandler := handlers.NewBlockHandler(db, auditDispatcher, monthCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		monthCache,
	)

	publicBookingHandler := handlers.NewPublicBookingHandler(
		db,
		createAppointmentUC,
		monthCache,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/availability", availabilityHandler.Slots)
			publicAPI.GET("/:slug/availability/month", availabilityHandler.Month)
			publicAPI.POST("/:slug/appointments", publicBookingHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/availability", availabilityHandler.MySlots)
			secured.GET("/me/availability/month", availabilityHandler.MyMonth)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)

			secured.GET("/me/blocks", blockHandler.List)
			secured.POST("/me/blocks", blockHandler.Create)
			secured.DELETE("/me/blocks/:id", blockHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
