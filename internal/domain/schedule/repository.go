package schedule

import (
	"context"
	"time"

	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type AppointmentFilter struct {
	Date       string
	ClientID   uint
	EmployeeID uint
	Status     string
}

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction; any error rolls the whole unit back.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Catalog lookups --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ClientExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// AssertSlotFree locks the employee's appointments intersecting
	// [start, end) and fails with time_conflict when any live one overlaps.
	// excludeID skips the appointment being rescheduled; zero means none.
	AssertSlotFree(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// -------- Appointment (state change / reads) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	// -------- Paired charge --------
	CreateCharge(
		ctx context.Context,
		ch *models.Charge,
	) error

	GetChargeByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Charge, error)

	UpdateCharge(
		ctx context.Context,
		ch *models.Charge,
	) error

	DeleteChargeByAppointment(
		ctx context.Context,
		appointmentID uint,
	) error
}
