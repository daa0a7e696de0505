package models

import (
	"time"
)

const ProviderLocal = "local"

// User is an account that owns pets. Accounts are deactivated by clearing IsActive.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        *string   `gorm:"size:100;uniqueIndex" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	DisplayName  string    `gorm:"size:100" json:"display_name"`
	AvatarURL    string    `gorm:"size:255" json:"avatar_url"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	AuthProvider string    `gorm:"size:20;default:'local'" json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
