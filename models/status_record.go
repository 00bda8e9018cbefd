package models

import "time"

// StatusRecord is one immutable audit entry in an entity's status history.
// Records are only ever inserted; the current status of an entity is derived
// from its most recently inserted record (record_id order, not occurred_at,
// since timestamps can collide at sub-second granularity).
type StatusRecord struct {
	RecordID   int       `gorm:"primaryKey;column:record_id" json:"record_id"`
	EntityKind string    `gorm:"column:entity_kind;index:idx_entity,priority:1;index:idx_kind_status,priority:1" json:"entity_kind"`
	EntityID   int       `gorm:"column:entity_id;index:idx_entity,priority:2" json:"entity_id"`
	Status     string    `gorm:"column:status;index:idx_kind_status,priority:2" json:"status"`
	ChangedBy  string    `gorm:"column:changed_by" json:"changed_by"`
	Note       *string   `gorm:"column:note" json:"note,omitempty"`
	OccurredAt time.Time `gorm:"column:occurred_at" json:"occurred_at"`
}

// TableName specifies the shared append-only table for both entity kinds.
func (StatusRecord) TableName() string {
	return "status_records"
}
