package models

import (
	"time"
)

// Message is a note attached to a task. Deleting a message is two-phase:
// the row is first detached (task and owner set to NULL), then a sweep
// removes every detached row in the table.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task    *uint  `gorm:"column:task;index" json:"task"`
	Owner   *uint  `gorm:"column:owner;index" json:"owner"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Body    string `gorm:"column:message;size:4096;not null" json:"message"`
}

// Detached reports whether the message is in the tombstone state awaiting
// the sweep.
func (m *Message) Detached() bool {
	return m.Task == nil && m.Owner == nil
}
