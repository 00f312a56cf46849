package models

import "time"

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

type Task struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Description string `gorm:"not null"`
	DueAt       *time.Time
	Completed      bool      `gorm:"not null;default:false"`
	Priority       string    `gorm:"not null;default:Medium"`
	Notified       bool      `gorm:"not null;default:false"`
	RemindAttempts int       `gorm:"not null;default:0"`
	AddedAt        time.Time `gorm:"not null"`
	EditedAt       *time.Time
	CompletedAt    *time.Time
}
