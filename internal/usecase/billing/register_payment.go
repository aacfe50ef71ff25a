package billing

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/audit"
	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/billing"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RegisterPaymentInput struct {
	ChargeID uint

	Kind   string // deposit | final
	Amount float64
	Method string

	PaidAt *time.Time
	Notes  *string
}

type RegisterPaymentResult struct {
	ChargeID         uint    `json:"charge_id"`
	NewStatus        string  `json:"new_status"`
	Pending          float64 `json:"pending"`
	PaymentReference string  `json:"payment_reference"`
}

// Amounts are money: at most two decimal places.
func isTwoDecimal(v float64) bool {
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-9
}

// ======================================================
// USE CASE
// ======================================================

type RegisterPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
	loc   *time.Location
}

func NewRegisterPayment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	log *logrus.Logger,
	loc *time.Location,
) *RegisterPayment {
	return &RegisterPayment{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
		loc:   loc,
	}
}

// Execute applies one staged payment to a charge. The charge row stays
// locked from the first read to the commit, so two concurrent registrations
// serialize: one wins, the other fails the stage guard.
func (uc *RegisterPayment) Execute(
	ctx context.Context,
	in RegisterPaymentInput,
) (*RegisterPaymentResult, error) {

	if !domain.IsValidKind(in.Kind) {
		return nil, httperr.ErrBusiness("invalid_payment_kind")
	}
	if in.Amount <= 0 || !isTwoDecimal(in.Amount) {
		return nil, httperr.ErrBusiness("invalid_amount")
	}
	if in.Method == "" || len(in.Method) > 50 {
		return nil, httperr.ErrBusiness("invalid_method")
	}

	paidAt := timezone.Now().In(uc.loc)
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	var result *RegisterPaymentResult

	err := uc.repo.Transaction(ctx, func(r domain.Repository) error {

		ch, err := r.GetChargeForUpdate(ctx, in.ChargeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("charge_not_found")
			}
			return err
		}

		switch domain.PaymentKind(in.Kind) {
		case domain.KindDeposit:
			if err := domain.ApplyDeposit(ch, in.Amount, in.Method, paidAt); err != nil {
				return err
			}
		case domain.KindFinal:
			if err := domain.ApplyFinal(ch, in.Amount, in.Method, paidAt); err != nil {
				return err
			}
		}

		ch.PaymentReference = uuid.NewString()
		if in.Notes != nil {
			ch.Notes = *in.Notes
		}

		if err := r.UpdateCharge(ctx, ch); err != nil {
			return err
		}

		result = &RegisterPaymentResult{
			ChargeID:         ch.ID,
			NewStatus:        ch.Status,
			Pending:          ch.Pending,
			PaymentReference: ch.PaymentReference,
		}
		return nil
	})

	if err != nil {
		uc.log.WithFields(logrus.Fields{
			"charge_id": in.ChargeID,
			"kind":      in.Kind,
			"error":     err,
		}).Warn("payment registration failed")
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"charge_id":  result.ChargeID,
		"kind":       in.Kind,
		"new_status": result.NewStatus,
	}).Info("payment registered")

	uc.audit.Dispatch(audit.Event{
		Action:   "payment_registered",
		Entity:   "charge",
		EntityID: &result.ChargeID,
		Metadata: map[string]any{
			"kind":       in.Kind,
			"amount":     in.Amount,
			"new_status": result.NewStatus,
		},
	})

	return result, nil
}
