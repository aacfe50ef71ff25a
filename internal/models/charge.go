package models

import "time"

// Charge is the billing record paired 1:1 with an appointment. It is created
// in the same transaction as its appointment and only ever mutated through
// the payment-registration flow.
type Charge struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"appointment"`

	Total   float64 `gorm:"type:decimal(10,2);not null" json:"total"`
	Pending float64 `gorm:"type:decimal(10,2)" json:"pending"`

	DepositAmount float64    `gorm:"type:decimal(10,2);default:0" json:"deposit_amount"`
	DepositMethod string     `gorm:"size:50" json:"deposit_method"`
	DepositDate   *time.Time `json:"deposit_date"`

	FinalMethod string     `gorm:"size:50" json:"final_method"`
	FinalDate   *time.Time `json:"final_date"`

	Status string `gorm:"size:20;default:'pending_deposit'" json:"status"`

	// Reference of the last accepted payment, for reconciliation.
	PaymentReference string `gorm:"size:36" json:"payment_reference"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
