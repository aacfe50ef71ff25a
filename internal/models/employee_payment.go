package models

import "time"

type EmployeePayment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint     `gorm:"index;not null" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"employee"`

	PayDate     string `gorm:"size:10;not null" json:"pay_date"`
	PeriodStart string `gorm:"size:10;not null" json:"period_start"`
	PeriodEnd   string `gorm:"size:10;not null" json:"period_end"`

	GrossAmount float64 `gorm:"type:decimal(10,2);not null" json:"gross_amount"`
	Deductions  float64 `gorm:"type:decimal(10,2);default:0" json:"deductions"`
	NetAmount   float64 `gorm:"type:decimal(10,2)" json:"net_amount"`

	Method    string `gorm:"size:50" json:"method"`
	Reference string `gorm:"size:100" json:"reference"`
	Notes     string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
