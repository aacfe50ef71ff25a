package models

import "time"

const (
	AttendanceCheckIn  = "check_in"
	AttendanceCheckOut = "check_out"
)

type AttendanceRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint     `gorm:"index;not null" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"employee"`

	Kind  string `gorm:"size:20;not null" json:"kind"`
	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
