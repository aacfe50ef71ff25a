package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/audit"
	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/schedule"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type RescheduleAppointmentInput struct {
	ID uint

	NewDate string
	NewTime string

	ExtraCost       *float64
	ExtraCostReason *string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
	loc   *time.Location
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	log *logrus.Logger,
	loc *time.Location,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
		loc:   loc,
	}
}

// Execute moves the appointment to a new slot. The new slot goes through the
// same locked availability check as creation, skipping the appointment being
// moved so it does not conflict with itself.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	start, err := parseSlot(in.NewDate, in.NewTime, uc.loc)
	if err != nil {
		return nil, err
	}

	var moved *models.Appointment

	err = uc.repo.Transaction(ctx, func(r domain.Repository) error {

		ap, err := r.GetAppointment(ctx, in.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
			return err
		}

		end := start.Add(time.Duration(ap.DurationMin) * time.Minute)

		if err := r.AssertSlotFree(ctx, ap.EmployeeID, start, end, ap.ID); err != nil {
			return err
		}

		ap.Date = in.NewDate
		ap.StartTime = start
		ap.EndTime = end
		ap.Status = string(domain.StatusRescheduled)

		if in.ExtraCost != nil {
			ap.ExtraCost = *in.ExtraCost
		}
		if in.ExtraCostReason != nil {
			ap.ExtraCostReason = in.ExtraCostReason
		}

		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		moved = ap
		return nil
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			err = httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"appointment_id": moved.ID,
		"new_date":       moved.Date,
	}).Info("appointment rescheduled")

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &moved.ID,
		Metadata: map[string]any{"date": in.NewDate, "time": in.NewTime},
	})

	return moved, nil
}
