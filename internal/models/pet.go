package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

type Size string

const (
	SizeSmall  Size = "small"  // < 10kg
	SizeMedium Size = "medium" // 10-25kg
	SizeLarge  Size = "large"  // 25-45kg
	SizeGiant  Size = "giant"  // > 45kg
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeGiant:
		return true
	}
	return false
}

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodExcited Mood = "excited"
	MoodCalm    Mood = "calm"
	MoodSleepy  Mood = "sleepy"
	MoodPlayful Mood = "playful"
	MoodHungry  Mood = "hungry"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
)

// AllMoods lists every mood in display order.
var AllMoods = []Mood{
	MoodHappy, MoodExcited, MoodCalm, MoodSleepy,
	MoodPlayful, MoodHungry, MoodSad, MoodAnxious,
}

func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodExcited, MoodCalm, MoodSleepy,
		MoodPlayful, MoodHungry, MoodSad, MoodAnxious:
		return true
	}
	return false
}

const (
	DefaultResponseStyle = "friendly"

	// XPPerInteraction is awarded on every recorded interaction.
	XPPerInteraction = 1
	// XPPerLevel is the experience needed to advance one level.
	XPPerLevel = 10
)

// Pet is the aggregate root for a user's pet. Deleted pets keep their row with IsActive=false.
type Pet struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	OwnerID           uint                        `gorm:"not null;index" json:"owner_id"`
	Name              string                      `gorm:"size:50;not null" json:"name"`
	Breed             string                      `gorm:"size:100;not null" json:"breed"`
	Age               *int                        `json:"age"` // months
	Gender            Gender                      `gorm:"size:10;default:'unknown'" json:"gender"`
	AvatarURL         *string                     `gorm:"size:500" json:"avatar_url"`
	Color             string                      `gorm:"size:100" json:"color"`
	Size              Size                        `gorm:"size:10;default:'medium'" json:"size"`
	Weight            *float64                    `json:"weight"` // kg
	Personality       string                      `gorm:"size:200" json:"personality"`
	Traits            datatypes.JSONSlice[string] `json:"personality_tags"`
	CurrentMood       Mood                        `gorm:"size:20;default:'happy';index" json:"current_mood"`
	MoodDescription   string                      `gorm:"size:200" json:"mood_description"`
	AIPrompt          string                      `gorm:"column:ai_personality_prompt;type:text" json:"ai_personality_prompt"`
	VoiceStyle        string                      `gorm:"size:50" json:"voice_style"`
	ResponseStyle     string                      `gorm:"size:50;default:'friendly'" json:"response_style"`
	InteractionCount  int                         `gorm:"not null;default:0" json:"interaction_count"`
	ExperiencePoints  int                         `gorm:"not null;default:0" json:"experience_points"`
	Level             int                         `gorm:"not null;default:1" json:"level"`
	LastInteractionAt *time.Time                  `json:"last_interaction_at"`
	IsActive          bool                        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
	Owner             User                        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

// LevelForXP derives the level reached with the given experience.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// RecordInteraction applies one interaction: count and XP go up by one, and the
// stored level is raised to the recomputed value but never lowered.
func (p *Pet) RecordInteraction(now time.Time) {
	p.InteractionCount++
	p.ExperiencePoints += XPPerInteraction
	p.LastInteractionAt = &now

	if lvl := LevelForXP(p.ExperiencePoints); lvl > p.Level {
		p.Level = lvl
	}
}

// PetPhoto belongs to one pet. At most one photo per pet has IsAvatar set.
type PetPhoto struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PetID        uint      `gorm:"not null;index" json:"pet_id"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	ThumbnailURL string    `gorm:"size:500" json:"thumbnail_url"`
	Description  string    `gorm:"size:200" json:"description"`
	FileSize     *int64    `json:"file_size"`
	Width        *int      `json:"width"`
	Height       *int      `json:"height"`
	IsAvatar     bool      `gorm:"not null;default:false" json:"is_avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Pet          Pet       `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"-"`
}
