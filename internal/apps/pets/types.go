package pets

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
)

type CreatePetRequest struct {
	Name            string   `json:"name" validate:"required,max=50"`
	Breed           string   `json:"breed" validate:"required,max=100"`
	Age             *int     `json:"age" validate:"omitempty,gte=0,lte=300"`
	Gender          string   `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Color           string   `json:"color" validate:"max=100"`
	Size            string   `json:"size" validate:"omitempty,oneof=small medium large giant"`
	Weight          *float64 `json:"weight" validate:"omitempty,gte=0,lte=200"`
	Personality     string   `json:"personality" validate:"max=200"`
	PersonalityTags []string `json:"personality_tags" validate:"max=20,dive,max=20"`
	CurrentMood     string   `json:"current_mood" validate:"omitempty,oneof=happy excited calm sleepy playful hungry sad anxious"`
	MoodDescription string   `json:"mood_description" validate:"max=200"`
	ResponseStyle   string   `json:"response_style" validate:"max=50"`
	VoiceStyle      string   `json:"voice_style" validate:"max=50"`
}

// UpdatePetRequest is a partial patch; nil fields are left untouched.
type UpdatePetRequest struct {
	Name                *string  `json:"name" validate:"omitempty,min=1,max=50"`
	Breed               *string  `json:"breed" validate:"omitempty,min=1,max=100"`
	Age                 *int     `json:"age" validate:"omitempty,gte=0,lte=300"`
	Gender              *string  `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Color               *string  `json:"color" validate:"omitempty,max=100"`
	Size                *string  `json:"size" validate:"omitempty,oneof=small medium large giant"`
	Weight              *float64 `json:"weight" validate:"omitempty,gte=0,lte=200"`
	Personality         *string  `json:"personality" validate:"omitempty,max=200"`
	PersonalityTags     []string `json:"personality_tags" validate:"max=20,dive,max=20"`
	CurrentMood         *string  `json:"current_mood" validate:"omitempty,oneof=happy excited calm sleepy playful hungry sad anxious"`
	MoodDescription     *string  `json:"mood_description" validate:"omitempty,max=200"`
	AIPersonalityPrompt *string  `json:"ai_personality_prompt" validate:"omitempty,max=2000"`
	VoiceStyle          *string  `json:"voice_style" validate:"omitempty,max=50"`
	ResponseStyle       *string  `json:"response_style" validate:"omitempty,max=50"`
}

type MoodRequest struct {
	Mood            string `json:"mood" validate:"required,oneof=happy excited calm sleepy playful hungry sad anxious"`
	MoodDescription string `json:"mood_description" validate:"max=200"`
}

type AddPhotoRequest struct {
	URL          string `json:"url" validate:"required,max=500"`
	ThumbnailURL string `json:"thumbnail_url" validate:"max=500"`
	Description  string `json:"description" validate:"max=200"`
	FileSize     *int64 `json:"file_size" validate:"omitempty,gte=0"`
	Width        *int   `json:"width" validate:"omitempty,gte=0"`
	Height       *int   `json:"height" validate:"omitempty,gte=0"`
	IsAvatar     bool   `json:"is_avatar"`
}

// Upload is a received photo file before validation.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
	Description string
	IsAvatar    bool
}

type ListQuery struct {
	Page   int
	Size   int
	Search string
	Mood   string
}

type PetResponse struct {
	models.Pet
	AgeDisplay string `json:"age_display"`
}

func NewPetResponse(p *models.Pet) PetResponse {
	resp := PetResponse{Pet: *p, AgeDisplay: p.AgeDisplay()}
	if resp.Traits == nil {
		resp.Traits = []string{}
	}
	return resp
}

type PetDetailResponse struct {
	PetResponse
	Photos []models.PetPhoto `json:"photos"`
}

type PetListResponse struct {
	Pets    []PetResponse `json:"pets"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Size    int           `json:"size"`
	HasNext bool          `json:"has_next"`
}

type PetStats struct {
	TotalPets         int64            `json:"total_pets"`
	ActivePets        int64            `json:"active_pets"`
	TotalInteractions int64            `json:"total_interactions"`
	AverageLevel      float64          `json:"average_level"`
	MoodDistribution  map[string]int64 `json:"mood_distribution"`
}

type AIPromptResponse struct {
	PetID           uint     `json:"pet_id"`
	PetName         string   `json:"pet_name"`
	AIPrompt        string   `json:"ai_prompt"`
	ResponseStyle   string   `json:"response_style"`
	CurrentMood     string   `json:"current_mood"`
	PersonalityTags []string `json:"personality_tags"`
}

type InteractionResponse struct {
	PetID             uint   `json:"pet_id"`
	InteractionCount  int    `json:"interaction_count"`
	ExperiencePoints  int    `json:"experience_points"`
	Level             int    `json:"level"`
	LeveledUp         bool   `json:"leveled_up"`
	LastInteractionAt string `json:"last_interaction_at"`
}
