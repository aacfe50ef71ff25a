package billing

import "github.com/AgendaEstetica/salon-agenda/internal/httperr"

// ===============================
// Charge Status
// ===============================

type Status string

const (
	StatusPendingDeposit Status = "pending_deposit"
	StatusDepositPaid    Status = "deposit_paid"
	StatusPaidComplete   Status = "paid_complete"
	StatusCancelled      Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPendingDeposit
}

// ===============================
// Payment kinds
// ===============================

type PaymentKind string

const (
	KindDeposit PaymentKind = "deposit"
	KindFinal   PaymentKind = "final"
)

func IsValidKind(k string) bool {
	return PaymentKind(k) == KindDeposit || PaymentKind(k) == KindFinal
}

// ===============================
// Stage guards
// ===============================

// CanAcceptPayment rejects settled or cancelled charges outright.
func CanAcceptPayment(current Status) error {
	if current == StatusPaidComplete || current == StatusCancelled {
		return httperr.ErrBusiness("already_settled")
	}
	return nil
}

// CanRegisterDeposit allows at most one deposit per charge.
func CanRegisterDeposit(current Status) error {
	if current != StatusPendingDeposit {
		return httperr.ErrBusiness("deposit_already_registered")
	}
	return nil
}

// CanRegisterFinal requires the deposit stage to be done first.
func CanRegisterFinal(current Status) error {
	if current == StatusPendingDeposit {
		return httperr.ErrBusiness("deposit_required_first")
	}
	return nil
}
