package billing

import (
	"context"

	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type ChargeFilter struct {
	Status   string
	DateFrom string
	DateTo   string
}

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// GetChargeForUpdate locks the row for the remainder of the enclosing
	// transaction so concurrent registrations serialize.
	GetChargeForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Charge, error)

	GetCharge(
		ctx context.Context,
		id uint,
	) (*models.Charge, error)

	GetChargeByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Charge, error)

	UpdateCharge(
		ctx context.Context,
		ch *models.Charge,
	) error

	ListCharges(
		ctx context.Context,
		filter ChargeFilter,
	) ([]models.Charge, error)
}
