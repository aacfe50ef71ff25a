package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	EmployeeID uint     `gorm:"index;not null" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"employee"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	Date      string    `gorm:"size:10;index;not null" json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Snapshots taken from the service at creation time so later catalog
	// edits do not rewrite history.
	DurationMin int     `json:"duration_min"`
	BasePrice   float64 `gorm:"type:decimal(10,2)" json:"base_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ExtraCost       float64 `gorm:"type:decimal(10,2);default:0" json:"extra_cost"`
	ExtraCostReason *string `gorm:"size:100" json:"extra_cost_reason"`
	Notes           string  `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
