package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/schedule"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) ClientExists(
	ctx context.Context,
	id uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleClient).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ScheduleGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&emp, id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) AssertSlotFree(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	q := forUpdate(r.db.WithContext(ctx)).
		Model(&models.Appointment{}).
		Where(
			"employee_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			employeeID,
			string(domain.StatusCancelled),
			end,
			start,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Find(&conflicts).Error; err != nil {
		// fail closed: a broken lookup never counts as a free slot
		return err
	}

	// The WHERE clause narrows and locks the candidates; the domain
	// predicate has the final word, so both encodings cannot drift apart.
	for _, c := range conflicts {
		if domain.Overlaps(start, end, c.StartTime, c.EndTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	return nil
}

// --------------------------------------------------
// Appointment (state change / reads)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Employee.User").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ScheduleGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Employee.User").
		Preload("Service")

	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.ClientID > 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.EmployeeID > 0 {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var apps []models.Appointment
	if err := q.
		Order("date DESC, start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Paired charge
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateCharge(
	ctx context.Context,
	ch *models.Charge,
) error {
	return r.db.WithContext(ctx).Create(ch).Error
}

func (r *ScheduleGormRepository) GetChargeByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Charge, error) {

	var ch models.Charge
	if err := forUpdate(r.db.WithContext(ctx)).
		Where("appointment_id = ?", appointmentID).
		First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ScheduleGormRepository) UpdateCharge(
	ctx context.Context,
	ch *models.Charge,
) error {
	return r.db.WithContext(ctx).Save(ch).Error
}

func (r *ScheduleGormRepository) DeleteChargeByAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.Charge{}).Error
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
