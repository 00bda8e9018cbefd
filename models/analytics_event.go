package models

import "time"

// AnalyticsEvent is a site event buffered by the event queue and written in
// batches. DedupKey keeps repeated events out of a single batch.
type AnalyticsEvent struct {
	EventID    int       `gorm:"primaryKey;column:event_id" json:"event_id"`
	EventName  string    `gorm:"column:event_name;index" json:"event_name"`
	DedupKey   string    `gorm:"column:dedup_key" json:"dedup_key"`
	Page       *string   `gorm:"column:page" json:"page,omitempty"`
	Locale     *string   `gorm:"column:locale" json:"locale,omitempty"`
	OccurredAt time.Time `gorm:"column:occurred_at" json:"occurred_at"`
	CreateAt   time.Time `gorm:"column:create_at" json:"create_at"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
