package models

import (
	"time"
)

// Log is an append-only audit record written every time a message body is
// read through the message info endpoint. Logs are never updated or deleted
// by clients.
type Log struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	MessageID uint `gorm:"not null;index" json:"message_id"`
	TaskID    uint `gorm:"not null;index" json:"task_id"`
	UserID    uint `gorm:"not null" json:"user_id"`
}
