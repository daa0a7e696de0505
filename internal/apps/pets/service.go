package pets

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PetService struct {
	db            *gorm.DB
	store         storage.FileStore
	maxUploadSize int64
	now           func() time.Time
}

func NewPetService(db *gorm.DB, store storage.FileStore, maxUploadSize int64) *PetService {
	return &PetService{
		db:            db,
		store:         store,
		maxUploadSize: maxUploadSize,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *PetService) Create(ctx context.Context, ownerID uint, req CreatePetRequest) (*models.Pet, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Breed = strings.TrimSpace(req.Breed)
	req.Color = strings.TrimSpace(req.Color)
	req.Personality = strings.TrimSpace(req.Personality)
	req.MoodDescription = strings.TrimSpace(req.MoodDescription)
	req.ResponseStyle = strings.TrimSpace(req.ResponseStyle)
	req.VoiceStyle = strings.TrimSpace(req.VoiceStyle)
	req.PersonalityTags = cleanTags(req.PersonalityTags)
	if err := services.Validate(&req); err != nil {
		return nil, err
	}

	pet := models.Pet{
		OwnerID:         ownerID,
		Name:            req.Name,
		Breed:           req.Breed,
		Age:             req.Age,
		Gender:          models.GenderUnknown,
		Color:           req.Color,
		Size:            models.SizeMedium,
		Weight:          req.Weight,
		Personality:     req.Personality,
		Traits:          req.PersonalityTags,
		CurrentMood:     models.MoodHappy,
		MoodDescription: req.MoodDescription,
		VoiceStyle:      req.VoiceStyle,
		ResponseStyle:   models.DefaultResponseStyle,
		Level:           1,
		IsActive:        true,
	}
	if req.Gender != "" {
		pet.Gender = models.Gender(req.Gender)
	}
	if req.Size != "" {
		pet.Size = models.Size(req.Size)
	}
	if req.CurrentMood != "" {
		pet.CurrentMood = models.Mood(req.CurrentMood)
	}
	if req.ResponseStyle != "" {
		pet.ResponseStyle = req.ResponseStyle
	}

	if err := s.db.WithContext(ctx).Create(&pet).Error; err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	slog.Info("pet created", "user_id", ownerID, "pet_id", pet.ID, "action", "create_pet")
	return &pet, nil
}

func (s *PetService) List(ctx context.Context, ownerID uint, q ListQuery) (*PetListResponse, error) {
	q.Page, q.Size = dto.ClampPage(q.Page, q.Size)
	q.Search = strings.TrimSpace(q.Search)
	if q.Mood != "" && !models.Mood(q.Mood).Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", services.ErrInvalidInput, q.Mood)
	}

	query := func() *gorm.DB {
		db := s.db.WithContext(ctx).Model(&models.Pet{}).Scopes(identity.OwnedBy(ownerID), identity.Active)
		if q.Search != "" {
			pattern := "%" + strings.ToLower(q.Search) + "%"
			db = db.Where("(LOWER(name) LIKE ? OR LOWER(breed) LIKE ?)", pattern, pattern)
		}
		if q.Mood != "" {
			db = db.Where("current_mood = ?", q.Mood)
		}
		return db
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Pet
	if err := query().
		Order("created_at DESC, id DESC").
		Limit(q.Size).
		Offset((q.Page - 1) * q.Size).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	pets := make([]PetResponse, 0, len(rows))
	for i := range rows {
		pets = append(pets, NewPetResponse(&rows[i]))
	}
	return &PetListResponse{
		Pets:    pets,
		Total:   total,
		Page:    q.Page,
		Size:    q.Size,
		HasNext: int64(q.Page*q.Size) < total,
	}, nil
}

func (s *PetService) Get(ctx context.Context, ownerID, petID uint) (*PetDetailResponse, error) {
	db := s.db.WithContext(ctx)
	pet, err := FindActivePet(db, ownerID, petID)
	if err != nil {
		return nil, err
	}
	photos, err := listPhotos(db, pet.ID)
	if err != nil {
		return nil, err
	}
	return &PetDetailResponse{PetResponse: NewPetResponse(pet), Photos: photos}, nil
}

func (s *PetService) Update(ctx context.Context, ownerID, petID uint, req UpdatePetRequest) (*models.Pet, error) {
	trimPtr(req.Name, req.Breed, req.Color, req.Personality, req.MoodDescription,
		req.VoiceStyle, req.ResponseStyle, req.AIPersonalityPrompt)
	if req.PersonalityTags != nil {
		req.PersonalityTags = cleanTags(req.PersonalityTags)
	}
	if err := services.Validate(&req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	pet, err := FindActivePet(db, ownerID, petID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIf := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setIf("name", req.Name)
	setIf("breed", req.Breed)
	setIf("gender", req.Gender)
	setIf("color", req.Color)
	setIf("size", req.Size)
	setIf("personality", req.Personality)
	setIf("current_mood", req.CurrentMood)
	setIf("mood_description", req.MoodDescription)
	setIf("ai_personality_prompt", req.AIPersonalityPrompt)
	setIf("voice_style", req.VoiceStyle)
	setIf("response_style", req.ResponseStyle)
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.PersonalityTags != nil {
		updates["traits"] = datatypes.JSONSlice[string](req.PersonalityTags)
	}

	if len(updates) > 0 {
		if err := db.Model(pet).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update pet: %w", err)
		}
	}
	return FindActivePet(db, ownerID, petID)
}

// SetMood changes the mood; the description is only replaced when one is given.
func (s *PetService) SetMood(ctx context.Context, ownerID, petID uint, req MoodRequest) (*models.Pet, error) {
	req.Mood = strings.TrimSpace(req.Mood)
	req.MoodDescription = strings.TrimSpace(req.MoodDescription)
	if err := services.Validate(&req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	pet, err := FindActivePet(db, ownerID, petID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"current_mood": req.Mood}
	if req.MoodDescription != "" {
		updates["mood_description"] = req.MoodDescription
	}
	if err := db.Model(pet).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update mood: %w", err)
	}
	return FindActivePet(db, ownerID, petID)
}

// RecordInteraction applies one interaction under a row lock so concurrent
// calls never lose increments.
func (s *PetService) RecordInteraction(ctx context.Context, ownerID, petID uint) (*InteractionResponse, error) {
	var pet *models.Pet
	var before int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		pet, err = lockActivePet(tx, ownerID, petID)
		if err != nil {
			return err
		}
		before = pet.Level
		pet.RecordInteraction(s.now())
		return tx.Model(pet).
			Select("interaction_count", "experience_points", "level", "last_interaction_at", "updated_at").
			Updates(pet).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordInteraction()
	if pet.Level > before {
		slog.Info("pet leveled up", "user_id", ownerID, "pet_id", pet.ID, "level", pet.Level, "action", "interact")
	}
	return &InteractionResponse{
		PetID:             pet.ID,
		InteractionCount:  pet.InteractionCount,
		ExperiencePoints:  pet.ExperiencePoints,
		Level:             pet.Level,
		LeveledUp:         pet.Level > before,
		LastInteractionAt: pet.LastInteractionAt.Format(time.RFC3339),
	}, nil
}

// Delete soft-deletes the pet; photos, feeds and messages are kept.
func (s *PetService) Delete(ctx context.Context, ownerID, petID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Pet{}).
		Scopes(identity.OwnedBy(ownerID), identity.Active).
		Where("id = ?", petID).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to delete pet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return services.ErrPetNotFound
	}
	slog.Info("pet deleted", "user_id", ownerID, "pet_id", petID, "action", "delete_pet")
	return nil
}

func (s *PetService) Stats(ctx context.Context, ownerID uint) (*PetStats, error) {
	db := s.db.WithContext(ctx)
	stats := &PetStats{MoodDistribution: make(map[string]int64, len(models.AllMoods))}
	for _, m := range models.AllMoods {
		stats.MoodDistribution[string(m)] = 0
	}

	if err := db.Model(&models.Pet{}).Scopes(identity.OwnedBy(ownerID)).Count(&stats.TotalPets).Error; err != nil {
		return nil, err
	}

	var agg struct {
		Active       int64
		Interactions int64
		AvgLevel     float64
	}
	if err := db.Model(&models.Pet{}).
		Scopes(identity.OwnedBy(ownerID), identity.Active).
		Select("COUNT(*) AS active, COALESCE(SUM(interaction_count), 0) AS interactions, COALESCE(AVG(level), 0) AS avg_level").
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	stats.ActivePets = agg.Active
	stats.TotalInteractions = agg.Interactions
	stats.AverageLevel = math.Round(agg.AvgLevel*100) / 100

	var moods []struct {
		Mood  string
		Count int64
	}
	if err := db.Model(&models.Pet{}).
		Scopes(identity.OwnedBy(ownerID), identity.Active).
		Select("current_mood AS mood, COUNT(*) AS count").
		Group("current_mood").
		Scan(&moods).Error; err != nil {
		return nil, err
	}
	for _, m := range moods {
		stats.MoodDistribution[m.Mood] = m.Count
	}
	return stats, nil
}

func (s *PetService) AIPrompt(ctx context.Context, ownerID, petID uint) (*AIPromptResponse, error) {
	pet, err := FindActivePet(s.db.WithContext(ctx), ownerID, petID)
	if err != nil {
		return nil, err
	}
	tags := []string(pet.Traits)
	if tags == nil {
		tags = []string{}
	}
	return &AIPromptResponse{
		PetID:           pet.ID,
		PetName:         pet.Name,
		AIPrompt:        pet.EffectivePrompt(),
		ResponseStyle:   pet.ResponseStyle,
		CurrentMood:     string(pet.CurrentMood),
		PersonalityTags: tags,
	}, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func trimPtr(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
