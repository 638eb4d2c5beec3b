package models

import (
	"time"
)

// TaskType classifies how demanding a task is. Stored as a fixed string token.
type TaskType string

const (
	TaskTypeBasic    TaskType = "basic"
	TaskTypeAdvanced TaskType = "advanced"
	TaskTypeExpert   TaskType = "expert"
)

// TaskStatus is the lifecycle state of a task. Stored as a fixed string token.
type TaskStatus string

const (
	TaskStatusTodo   TaskStatus = "todo"
	TaskStatusHold   TaskStatus = "hold"
	TaskStatusClosed TaskStatus = "closed"
)

// Valid reports whether t is one of the known type tokens.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeBasic, TaskTypeAdvanced, TaskTypeExpert:
		return true
	}
	return false
}

// Valid reports whether s is one of the known status tokens.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusHold, TaskStatusClosed:
		return true
	}
	return false
}

// Task is a unit of work owned by a single user. Non-owners gain visibility
// through Association rows.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner       uint       `gorm:"column:owner;not null;index" json:"owner"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"size:4096;not null" json:"description"`
	Type        TaskType   `gorm:"type:varchar(16);not null" json:"type"`
	Status      TaskStatus `gorm:"type:varchar(16);not null" json:"status"`

	// Relations
	Associations []Association `gorm:"foreignKey:Task" json:"associations,omitempty"`
}
