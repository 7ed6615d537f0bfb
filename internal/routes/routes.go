package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gdmcare/portal-api/internal/audit"
	"github.com/gdmcare/portal-api/internal/cache"
	"github.com/gdmcare/portal-api/internal/config"
	"github.com/gdmcare/portal-api/internal/handlers"
	infraRepo "github.com/gdmcare/portal-api/internal/infra/repository"
	"github.com/gdmcare/portal-api/internal/middleware"
	"github.com/gdmcare/portal-api/internal/models"
	"github.com/gdmcare/portal-api/internal/notify"
	"github.com/gdmcare/portal-api/internal/predictor"
	ucScheduling "github.com/gdmcare/portal-api/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifyDispatcher := notify.NewDispatcher(db, log)

	availabilityCache := cache.NewAvailability(cfg.RedisAddr, cfg.RedisPassword, log)

	riskClient := predictor.New(cfg.PredictorURL)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	assignedDoctorsUC := ucScheduling.NewAssignedDoctors(schedulingRepo)

	getAvailabilityUC := ucScheduling.NewGetAvailability(
		schedulingRepo,
		availabilityCache,
	)

	bookUC := ucScheduling.NewBookAppointment(
		schedulingRepo,
		auditDispatcher,
		notifyDispatcher,
		availabilityCache,
	)

	cancelUC := ucScheduling.NewCancelAppointment(
		schedulingRepo,
		auditDispatcher,
		notifyDispatcher,
		availabilityCache,
	)

	rescheduleUC := ucScheduling.NewRescheduleAppointment(
		schedulingRepo,
		auditDispatcher,
		notifyDispatcher,
		availabilityCache,
	)

	updateStatusUC := ucScheduling.NewUpdateStatus(
		schedulingRepo,
		auditDispatcher,
	)

	listPatientUC := ucScheduling.NewListPatientAppointments(schedulingRepo)
	listDoctorUC := ucScheduling.NewListDoctorAppointments(schedulingRepo)

	getScheduleUC := ucScheduling.NewGetDoctorSchedule(schedulingRepo)

	setRecurringUC := ucScheduling.NewSetRecurringAvailability(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	blockDateUC := ucScheduling.NewBlockDate(
		schedulingRepo,
		auditDispatcher,
		notifyDispatcher,
		availabilityCache,
	)

	removeBlockUC := ucScheduling.NewRemoveBlock(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		cfg, log,
		assignedDoctorsUC,
		getAvailabilityUC,
		bookUC,
		cancelUC,
		rescheduleUC,
		listPatientUC,
	)

	doctorAppointmentHandler := handlers.NewDoctorAppointmentHandler(
		cfg, log,
		listDoctorUC,
		cancelUC,
		rescheduleUC,
		updateStatusUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(
		cfg, log,
		getScheduleUC,
		setRecurringUC,
		blockDateUC,
		removeBlockUC,
	)

	assignmentHandler := handlers.NewAssignmentHandler(db)
	glucoseHandler := handlers.NewGlucoseHandler(db, notifyDispatcher)
	clinicalHandler := handlers.NewClinicalHandler(db, riskClient, log)
	notificationHandler := handlers.NewNotificationHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// PATIENT
			// ------------------------------
			patient := secured.Group("/patient")
			patient.Use(middleware.RequireRole(models.RolePatient))
			{
				patient.GET("/doctors", bookingHandler.ListDoctors)
				patient.GET("/doctors/:id/availability", bookingHandler.Availability)

				patient.POST("/appointments", bookingHandler.Book)
				patient.GET("/appointments", bookingHandler.List)
				patient.PATCH("/appointments/:id/cancel", bookingHandler.Cancel)
				patient.PATCH("/appointments/:id/reschedule", bookingHandler.Reschedule)

				patient.POST("/glucose", glucoseHandler.Create)
				patient.GET("/glucose", glucoseHandler.List)
			}

			// ------------------------------
			// DOCTOR
			// ------------------------------
			doctor := secured.Group("/doctor")
			doctor.Use(middleware.RequireRole(models.RoleDoctor))
			{
				doctor.GET("/schedule", scheduleHandler.Get)
				doctor.PUT("/schedule/recurring", scheduleHandler.SetRecurring)
				doctor.POST("/schedule/blocks", scheduleHandler.BlockDate)
				doctor.DELETE("/schedule/blocks/:id", scheduleHandler.RemoveBlock)

				doctor.GET("/appointments", doctorAppointmentHandler.List)
				doctor.PATCH("/appointments/:id/cancel", doctorAppointmentHandler.Cancel)
				doctor.PATCH("/appointments/:id/reschedule", doctorAppointmentHandler.Reschedule)
				doctor.PATCH("/appointments/:id/status", doctorAppointmentHandler.UpdateStatus)

				doctor.GET("/patients", assignmentHandler.ListPatients)
				doctor.POST("/patients", assignmentHandler.Assign)
				doctor.DELETE("/patients/:id", assignmentHandler.Unassign)

				doctor.GET("/patients/:id/glucose", glucoseHandler.ListForPatient)
				doctor.GET("/patients/:id/clinical", clinicalHandler.Get)
				doctor.PUT("/patients/:id/clinical", clinicalHandler.Upsert)
				doctor.POST("/patients/:id/clinical/predict", clinicalHandler.Predict)
			}
		}
	}
}
