package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/audit"
	"github.com/AgendaEstetica/salon-agenda/internal/domain/billing"
	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/schedule"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
	"github.com/AgendaEstetica/salon-agenda/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
	loc   *time.Location
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	log *logrus.Logger,
	loc *time.Location,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
		loc:   loc,
	}
}

// Execute cancels the appointment and its charge in one transaction, so the
// pair never disagrees about being cancelled.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.Transaction(ctx, func(r domain.Repository) error {

		ap, err := r.GetAppointment(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
			return err
		}

		now := timezone.Now().In(uc.loc)
		ap.Status = string(domain.StatusCancelled)
		ap.CancelledAt = &now

		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		ch, err := r.GetChargeByAppointment(ctx, ap.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if ch != nil {
			billing.Cancel(ch)
			if err := r.UpdateCharge(ctx, ch); err != nil {
				return err
			}
		}

		cancelled = ap
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"appointment_id": cancelled.ID,
	}).Info("appointment cancelled")

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &cancelled.ID,
	})

	return cancelled, nil
}
