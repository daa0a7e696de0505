package models

import (
	"time"

	"gorm.io/datatypes"
)

// Feed is a short post published on behalf of a pet.
type Feed struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	PetID         uint                        `gorm:"not null;index" json:"pet_id"`
	UserID        uint                        `gorm:"not null;index" json:"user_id"`
	Content       string                      `gorm:"type:text;not null" json:"content"`
	Images        datatypes.JSONSlice[string] `json:"images"`
	Mood          string                      `gorm:"size:20" json:"mood"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	LikesCount    int                         `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int                         `gorm:"not null;default:0" json:"comments_count"`
	SharesCount   int                         `gorm:"not null;default:0" json:"shares_count"`
	IsPublic      bool                        `gorm:"not null;index" json:"is_public"`
	CreatedAt     time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	Pet           Pet                         `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"-"`
}
