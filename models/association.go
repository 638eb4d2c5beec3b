package models

import (
	"time"
)

// Association grants a non-owner user visibility into a task. Duplicate
// (task, user) rows are tolerated; they carry no extra meaning.
type Association struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Task uint `gorm:"column:task;not null;index" json:"task"`
	User uint `gorm:"column:user;not null;index" json:"user"`
}
