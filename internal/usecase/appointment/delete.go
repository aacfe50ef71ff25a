package appointment

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/audit"
	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/schedule"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewDeleteAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	log *logrus.Logger,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
	}
}

// Execute removes the appointment and its charge together; an appointment
// row never survives without its billing record nor the other way around.
func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {

	err := uc.repo.Transaction(ctx, func(r domain.Repository) error {

		if err := r.DeleteChargeByAppointment(ctx, id); err != nil {
			return err
		}

		if err := r.DeleteAppointment(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		return nil
	})

	if err != nil {
		return err
	}

	uc.log.WithFields(logrus.Fields{"appointment_id": id}).Info("appointment deleted")

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
