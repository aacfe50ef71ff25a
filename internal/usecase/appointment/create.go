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
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID   uint
	EmployeeID uint
	ServiceID  uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM[:SS]
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
	loc   *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	log *logrus.Logger,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
		loc:   loc,
	}
}

// Execute creates the appointment and its charge as a single unit: the
// availability check, the appointment insert and the charge insert share one
// transaction, so either both rows exist afterwards or neither does.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, err := parseSlot(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, err
	}

	var created *models.Appointment

	err = uc.repo.Transaction(ctx, func(r domain.Repository) error {

		ok, err := r.ClientExists(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.ErrBusiness("client_not_found")
		}

		emp, err := r.GetEmployee(ctx, in.EmployeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("employee_not_found")
			}
			return err
		}
		if !emp.Active {
			return httperr.ErrBusiness("employee_inactive")
		}

		// Re-read price and duration inside the transaction so the
		// snapshots reflect the catalog at booking time.
		svc, err := r.GetService(ctx, in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("service_not_found")
			}
			return err
		}

		end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

		if err := r.AssertSlotFree(ctx, in.EmployeeID, start, end, 0); err != nil {
			return err
		}

		ap := &models.Appointment{
			ClientID:    in.ClientID,
			EmployeeID:  in.EmployeeID,
			ServiceID:   in.ServiceID,
			Date:        in.Date,
			StartTime:   start,
			EndTime:     end,
			DurationMin: svc.DurationMin,
			BasePrice:   svc.Price,
			Status:      string(domain.InitialStatus()),
			Notes:       in.Notes,
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		ch := &models.Charge{
			AppointmentID: ap.ID,
			Total:         svc.Price,
			Pending:       svc.Price,
			Status:        string(billing.InitialStatus()),
		}

		if err := r.CreateCharge(ctx, ch); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		// The exclusion constraint catches racing inserts that both passed
		// the locked check before either committed.
		if httperr.IsExclusionConflict(err) {
			err = httperr.ErrBusiness("time_conflict")
		}
		uc.log.WithFields(logrus.Fields{
			"client_id":   in.ClientID,
			"employee_id": in.EmployeeID,
			"service_id":  in.ServiceID,
			"date":        in.Date,
			"error":       err,
		}).Warn("appointment creation failed")
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"appointment_id": created.ID,
		"employee_id":    created.EmployeeID,
		"date":           created.Date,
	}).Info("appointment created")

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return created, nil
}
