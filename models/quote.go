package models

import "time"

// Quote represents a quote request submitted from the public quote form.
type Quote struct {
	QuoteID       int        `gorm:"primaryKey;column:quote_id" json:"quote_id"`
	Reference     string     `gorm:"column:reference;unique" json:"reference"`
	FullName      string     `gorm:"column:full_name" json:"full_name"`
	Email         string     `gorm:"column:email" json:"email"`
	Phone         *string    `gorm:"column:phone" json:"phone,omitempty"`
	Origin        string     `gorm:"column:origin" json:"origin"`
	Destination   string     `gorm:"column:destination" json:"destination"`
	DepartureDate time.Time  `gorm:"column:departure_date" json:"departure_date"`
	ReturnDate    *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
	Passengers    int        `gorm:"column:passengers" json:"passengers"`
	AircraftType  *string    `gorm:"column:aircraft_type" json:"aircraft_type,omitempty"`
	Message       *string    `gorm:"column:message" json:"message,omitempty"`
	Locale        string     `gorm:"column:locale" json:"locale"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Quote) TableName() string {
	return "quotes"
}
