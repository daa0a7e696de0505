package feeds

import "github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"

type CreateFeedRequest struct {
	PetID    uint     `json:"pet_id" validate:"required"`
	Content  string   `json:"content" validate:"required,max=1000"`
	Images   []string `json:"images" validate:"max=9,dive,required,max=500"`
	Mood     string   `json:"mood" validate:"max=20"`
	Tags     []string `json:"tags" validate:"max=10,dive,required,max=30"`
	IsPublic *bool    `json:"is_public"`
}

// FeedResponse is a feed with the display fields of the pet it was posted for.
type FeedResponse struct {
	models.Feed
	PetName      string  `json:"pet_name"`
	PetAvatarURL *string `json:"pet_avatar_url"`
}

type FeedListResponse struct {
	Feeds   []FeedResponse `json:"feeds"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Size    int            `json:"size"`
	HasNext bool           `json:"has_next"`
}

type LikeResponse struct {
	FeedID     uint `json:"feed_id"`
	LikesCount int  `json:"likes_count"`
}
