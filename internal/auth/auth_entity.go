package auth

import "time"

// Admin is keyed by username. Session login maps a verified email onto it.
type Admin struct {
	Username     string `gorm:"type:varchar(255);primaryKey"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Name         string `gorm:"type:varchar(150);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
