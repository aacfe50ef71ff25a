package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/audit"
	"github.com/AgendaEstetica/salon-agenda/internal/config"
	"github.com/AgendaEstetica/salon-agenda/internal/handlers"
	infraRepo "github.com/AgendaEstetica/salon-agenda/internal/infra/repository"
	"github.com/AgendaEstetica/salon-agenda/internal/timezone"
	ucAppointment "github.com/AgendaEstetica/salon-agenda/internal/usecase/appointment"
	ucBilling "github.com/AgendaEstetica/salon-agenda/internal/usecase/billing"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
		log,
		loc,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		scheduleRepo,
		auditDispatcher,
		log,
		loc,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		scheduleRepo,
		auditDispatcher,
		log,
		loc,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
		log,
		loc,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		scheduleRepo,
		auditDispatcher,
		log,
	)

	getAppointmentUC := ucAppointment.NewGetAppointment(scheduleRepo)
	listAppointmentsUC := ucAppointment.NewListAppointments(scheduleRepo)

	// ======================================================
	// USE CASES — BILLING
	// ======================================================
	registerPaymentUC := ucBilling.NewRegisterPayment(
		billingRepo,
		auditDispatcher,
		log,
		loc,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		deleteAppointmentUC,
		getAppointmentUC,
		listAppointmentsUC,
	)

	chargeHandler := handlers.NewChargeHandler(registerPaymentUC, billingRepo)

	serviceHandler := handlers.NewServiceHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db)
	attendanceHandler := handlers.NewAttendanceHandler(db)
	employeePaymentHandler := handlers.NewEmployeePaymentHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PATCH("/appointments/:id", appointmentHandler.Update)
		api.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		api.GET("/appointments/:id/charge", chargeHandler.GetByAppointment)

		// ------------------------------
		// CHARGES
		// ------------------------------
		api.GET("/charges", chargeHandler.List)
		api.GET("/charges/:id", chargeHandler.GetByID)
		api.POST("/charges/:id/payments", chargeHandler.RegisterPayment)

		// ------------------------------
		// CATALOG
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.GET("/services/:id", serviceHandler.Get)
		api.PATCH("/services/:id", serviceHandler.Update)
		api.DELETE("/services/:id", serviceHandler.Delete)

		// ------------------------------
		// PEOPLE
		// ------------------------------
		api.GET("/employees", employeeHandler.List)
		api.POST("/employees", employeeHandler.Create)
		api.GET("/employees/:id", employeeHandler.Get)
		api.PATCH("/employees/:id", employeeHandler.Update)
		api.PATCH("/employees/:id/deactivate", employeeHandler.Deactivate)

		api.GET("/clients", clientHandler.List)
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients/:id", clientHandler.Get)
		api.PATCH("/clients/:id", clientHandler.Update)

		// ------------------------------
		// STAFF OPERATIONS
		// ------------------------------
		api.POST("/attendance", attendanceHandler.Create)
		api.GET("/attendance", attendanceHandler.List)

		api.POST("/employee-payments", employeePaymentHandler.Create)
		api.GET("/employee-payments", employeePaymentHandler.List)
		api.GET("/employee-payments/:id", employeePaymentHandler.Get)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
