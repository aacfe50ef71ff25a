package schedule

import "github.com/AgendaEstetica/salon-agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusCancelled   Status = "cancelled"
	StatusAttended    Status = "attended"
	StatusRescheduled Status = "rescheduled"
)

func InitialStatus() Status {
	return StatusPending
}

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusAttended, StatusRescheduled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCancel: attended and already-cancelled appointments stay as they are.
func CanCancel(current Status) error {
	if current == StatusCancelled || current == StatusAttended {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule mirrors CanCancel: only live appointments can be moved.
func CanReschedule(current Status) error {
	if current == StatusCancelled || current == StatusAttended {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
