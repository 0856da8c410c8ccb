package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mufies/OHMS-GROUP3-sub002/internal/config"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/handlers"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/middleware"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/models"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/schedule"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	horizonCache := schedule.NewHorizonCache(cfg.Schedule.HorizonCacheSize)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg, horizonCache)
	appointmentHandler := handlers.NewAppointmentHandler(db, horizonCache)
	examinationHandler := handlers.NewExaminationHandler(db)
	messageHandler := handlers.NewMessageHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes (typically admin-only)
		userRoutes := private.Group("/users")
		{
			// Accessible by all authenticated users, e.g. when picking a doctor
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Accessible by doctors and admins
			userRoutes.GET("/doctor-patients", userHandler.GetDoctorPatients)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Schedule routes: declared work intervals and the derived slot calendar
		scheduleRoutes := private.Group("/schedule")
		{
			scheduleRoutes.GET("/:doctorId", scheduleHandler.GetDoctorSchedule)
			scheduleRoutes.GET("/:doctorId/slots", scheduleHandler.GetDoctorSlots)
			scheduleRoutes.PUT("/:doctorId", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), scheduleHandler.UpsertDoctorSchedule)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Patients book for themselves; the patient ID comes from the token
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)

			// All authenticated users get their own appointments; handler differentiates by role
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			// Raw per-day appointment list used by booking clients for conflict display
			appointmentRoutes.GET("/doctor/:doctorId/date/:date", appointmentHandler.GetAppointmentsByDoctorAndDate)

			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Status updates; patients may only cancel (enforced in handler)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		}

		// Diagnostic-service catalog routes
		examinationRoutes := private.Group("/medical-examination")
		{
			examinationRoutes.POST("/by-specialty", examinationHandler.GetExaminationsBySpecialty)
			examinationRoutes.POST("/quote", examinationHandler.GetQuote)

			adminExamRoutes := examinationRoutes.Group("")
			adminExamRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminExamRoutes.POST("", examinationHandler.CreateExamination)
				adminExamRoutes.PUT("/:id", examinationHandler.UpdateExamination)
				adminExamRoutes.DELETE("/:id", examinationHandler.DeleteExamination)
			}
		}

		// Messaging routes
		messageRoutes := private.Group("/messages")
		{
			messageRoutes.POST("/send", messageHandler.SendMessage)
			messageRoutes.GET("", messageHandler.GetMessagesWithUser)
			messageRoutes.GET("/new", messageHandler.GetNewMessages)
			messageRoutes.PATCH("/:messageId/read", messageHandler.MarkMessageAsRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
