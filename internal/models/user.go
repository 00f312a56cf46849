package models

import "time"

type User struct {
	ID            uint   `gorm:"primaryKey"`
	ExternalID    string `gorm:"uniqueIndex;not null"`
	Points        int    `gorm:"not null;default:0"`
	Streak        int    `gorm:"not null;default:0"`
	LastCompleted *time.Time
	CreatedAt     time.Time `gorm:"not null"`
}
