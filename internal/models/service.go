package models

import "time"

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMin int     `gorm:"not null" json:"duration_min"`

	ParentServiceID *uint    `json:"parent_service_id"`
	ParentService   *Service `gorm:"foreignKey:ParentServiceID" json:"parent_service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
