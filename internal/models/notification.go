package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "booking", "review", "system"
	Title   string `gorm:"not null"`
	Message string
	Link    string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"booking_id": "...", "review_id": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}
