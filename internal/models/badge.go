package models

import "time"

type Badge struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_badge_user_name"`
	Name      string    `gorm:"not null;uniqueIndex:uidx_badge_user_name"`
	AwardedAt time.Time `gorm:"not null"`
}
