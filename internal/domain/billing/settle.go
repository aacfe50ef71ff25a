package billing

import (
	"time"

	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyDeposit records the advance payment on ch. A deposit covering the
// full total settles the charge in one step.
func ApplyDeposit(ch *models.Charge, amount float64, method string, paidAt time.Time) error {
	if err := CanAcceptPayment(Status(ch.Status)); err != nil {
		return err
	}
	if err := CanRegisterDeposit(Status(ch.Status)); err != nil {
		return err
	}
	if amount > ch.Total {
		return httperr.ErrBusinessMsg(
			"deposit_exceeds_total",
			"deposit amount cannot exceed the charge total",
		)
	}

	ch.DepositAmount = amount
	ch.DepositMethod = method
	ch.DepositDate = &paidAt
	ch.Pending = ch.Total - amount

	if amount >= ch.Total {
		ch.Status = string(StatusPaidComplete)
	} else {
		ch.Status = string(StatusDepositPaid)
	}
	return nil
}

// ApplyFinal settles the remaining balance. The amount must match the
// pending balance exactly; partial or excess final payments are rejected.
func ApplyFinal(ch *models.Charge, amount float64, method string, paidAt time.Time) error {
	if err := CanAcceptPayment(Status(ch.Status)); err != nil {
		return err
	}
	if err := CanRegisterFinal(Status(ch.Status)); err != nil {
		return err
	}
	if amount != ch.Pending {
		return httperr.ErrBusinessMsg(
			"final_amount_mismatch",
			"final payment must equal the pending balance",
		)
	}

	ch.FinalMethod = method
	ch.FinalDate = &paidAt
	ch.Pending = 0
	ch.Status = string(StatusPaidComplete)
	return nil
}

// Cancel marks the charge cancelled together with its appointment.
func Cancel(ch *models.Charge) {
	ch.Status = string(StatusCancelled)
}
