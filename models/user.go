package models

import (
	"time"
)

// User represents a user account in the system
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Account status
	IsActive     bool `gorm:"default:true" json:"is_active"`
	TokenVersion int  `gorm:"default:0" json:"-"`

	// Relations
	Tasks    []Task    `gorm:"foreignKey:Owner" json:"tasks,omitempty"`
	Messages []Message `gorm:"foreignKey:Owner" json:"messages,omitempty"`
}
