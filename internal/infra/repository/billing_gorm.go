package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/billing"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

func (r *BillingGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BillingGormRepository{db: tx})
	})
}

func (r *BillingGormRepository) GetChargeForUpdate(
	ctx context.Context,
	id uint,
) (*models.Charge, error) {

	var ch models.Charge
	if err := forUpdate(r.db.WithContext(ctx)).
		First(&ch, id).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *BillingGormRepository) GetCharge(
	ctx context.Context,
	id uint,
) (*models.Charge, error) {

	var ch models.Charge
	if err := r.db.WithContext(ctx).
		Preload("Appointment.Client").
		Preload("Appointment.Service").
		First(&ch, id).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *BillingGormRepository) GetChargeByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Charge, error) {

	var ch models.Charge
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *BillingGormRepository) UpdateCharge(
	ctx context.Context,
	ch *models.Charge,
) error {
	return r.db.WithContext(ctx).Save(ch).Error
}

func (r *BillingGormRepository) ListCharges(
	ctx context.Context,
	filter domain.ChargeFilter,
) ([]models.Charge, error) {

	q := r.db.WithContext(ctx).
		Preload("Appointment.Client").
		Preload("Appointment.Service").
		Joins("JOIN appointments ON appointments.id = charges.appointment_id")

	if filter.Status != "" {
		q = q.Where("charges.status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		q = q.Where("appointments.date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("appointments.date <= ?", filter.DateTo)
	}

	var charges []models.Charge
	if err := q.
		Order("appointments.date DESC, charges.id DESC").
		Find(&charges).Error; err != nil {
		return nil, err
	}

	return charges, nil
}

// Compile-time check
var _ domain.Repository = (*BillingGormRepository)(nil)
