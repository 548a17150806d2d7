package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the append-only audit trail. Writes are best-effort
// and never block the operation they describe.
type ActivityLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Action      string         `gorm:"column:action;not null" json:"action"`
	Description string         `gorm:"column:description" json:"description"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_log"
}
