package models

import "time"

// Payment is a bookkeeping record for money received against a quote.
// Gateway integration happens outside this system; admins record payments
// here after the fact so the dashboard can report totals.
type Payment struct {
	PaymentID  int        `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	QuoteID    int        `gorm:"column:quote_id;index" json:"quote_id"`
	Amount     float64    `gorm:"column:amount" json:"amount"`
	Currency   string     `gorm:"column:currency" json:"currency"`
	Method     string     `gorm:"column:method" json:"method"` // wire|card|other
	Reference  *string    `gorm:"column:reference" json:"reference,omitempty"`
	RecordedBy string     `gorm:"column:recorded_by" json:"recorded_by"`
	ReceivedAt time.Time  `gorm:"column:received_at" json:"received_at"`
	CreateAt   time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt   time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Quote Quote `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
