package dto

import "time"

// AppointmentListDTO flattens the joined display data the booking screens
// need: who, with whom, for what.
type AppointmentListDTO struct {
	ID        uint      `json:"id"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`

	DurationMin int     `json:"duration_min"`
	BasePrice   float64 `json:"base_price"`
	ExtraCost   float64 `json:"extra_cost"`
	Notes       string  `json:"notes"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`

	EmployeeID        uint   `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	EmployeeSpecialty string `json:"employee_specialty"`

	ServiceID           uint    `json:"service_id"`
	ServiceName         string  `json:"service_name"`
	ServiceCurrentPrice float64 `json:"service_current_price"`

	CreatedAt time.Time `json:"created_at"`
}
