package models

import "time"

// Contact represents a message submitted from the public contact form.
type Contact struct {
	ContactID int        `gorm:"primaryKey;column:contact_id" json:"contact_id"`
	Reference string     `gorm:"column:reference;unique" json:"reference"`
	FullName  string     `gorm:"column:full_name" json:"full_name"`
	Email     string     `gorm:"column:email" json:"email"`
	Phone     *string    `gorm:"column:phone" json:"phone,omitempty"`
	Subject   string     `gorm:"column:subject" json:"subject"`
	Message   string     `gorm:"column:message" json:"message"`
	Locale    string     `gorm:"column:locale" json:"locale"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Contact) TableName() string {
	return "contacts"
}
