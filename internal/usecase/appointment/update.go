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

// UpdateAppointmentInput carries the allow-listed PATCH fields. Nil means
// "leave unchanged"; ClearExtraCostReason distinguishes an explicit null on
// the reason from an absent field.
type UpdateAppointmentInput struct {
	ID uint

	Status               *string
	ExtraCost            *float64
	ExtraCostReason      *string
	ClearExtraCostReason bool

	Date *string
	Time *string
}

func (in UpdateAppointmentInput) empty() bool {
	return in.Status == nil &&
		in.ExtraCost == nil &&
		in.ExtraCostReason == nil &&
		!in.ClearExtraCostReason &&
		in.Date == nil &&
		in.Time == nil
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
	loc   *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	log *logrus.Logger,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
		loc:   loc,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if in.empty() {
		return nil, httperr.ErrBusiness("no_fields")
	}

	if in.Status != nil && !domain.IsValidStatus(*in.Status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	var updated *models.Appointment

	err := uc.repo.Transaction(ctx, func(r domain.Repository) error {

		ap, err := r.GetAppointment(ctx, in.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		if in.Date != nil || in.Time != nil {
			date := ap.Date
			if in.Date != nil {
				date = *in.Date
			}
			clock := ap.StartTime.In(uc.loc).Format("15:04")
			if in.Time != nil {
				clock = *in.Time
			}

			start, err := parseSlot(date, clock, uc.loc)
			if err != nil {
				return err
			}

			end := start.Add(time.Duration(ap.DurationMin) * time.Minute)

			// A moved slot goes through the same locked availability
			// check as creation, skipping the row being moved.
			if err := r.AssertSlotFree(ctx, ap.EmployeeID, start, end, ap.ID); err != nil {
				return err
			}

			ap.Date = date
			ap.StartTime = start
			ap.EndTime = end
		}

		if in.ExtraCost != nil {
			ap.ExtraCost = *in.ExtraCost
		}
		if in.ClearExtraCostReason {
			ap.ExtraCostReason = nil
		} else if in.ExtraCostReason != nil {
			ap.ExtraCostReason = in.ExtraCostReason
		}

		if in.Status != nil {
			ap.Status = *in.Status

			// Cancelling through PATCH behaves like CancelAppointment:
			// the paired charge goes down with it.
			if domain.Status(*in.Status) == domain.StatusCancelled {
				now := timezone.Now().In(uc.loc)
				ap.CancelledAt = &now

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
			}
		}

		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		updated = ap
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}
