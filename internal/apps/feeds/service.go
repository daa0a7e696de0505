package feeds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps/pets"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"gorm.io/gorm"
)

type FeedService struct {
	db         *gorm.DB
	moderation *services.ModerationService
}

func NewFeedService(db *gorm.DB, moderation *services.ModerationService) *FeedService {
	if moderation == nil {
		moderation = services.NewModerationService()
	}
	return &FeedService{db: db, moderation: moderation}
}

func (s *FeedService) Create(ctx context.Context, userID uint, req CreateFeedRequest) (*FeedResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	req.Mood = strings.TrimSpace(req.Mood)
	req.Images = trimAll(req.Images)
	req.Tags = trimAll(req.Tags)
	if err := services.Validate(&req); err != nil {
		return nil, err
	}
	if ok, reason := s.moderation.FilterContent(req.Content); !ok {
		slog.Info("feed rejected by moderation", "user_id", userID, "reason", reason, "action", "create_feed")
		return nil, fmt.Errorf("%w: %s", services.ErrContentRejected, s.moderation.RejectionMessage(reason))
	}

	db := s.db.WithContext(ctx)
	pet, err := pets.FindActivePet(db, userID, req.PetID)
	if err != nil {
		return nil, err
	}

	feed := models.Feed{
		PetID:    pet.ID,
		UserID:   userID,
		Content:  req.Content,
		Images:   req.Images,
		Mood:     req.Mood,
		Tags:     req.Tags,
		IsPublic: req.IsPublic == nil || *req.IsPublic,
	}
	if err := db.Create(&feed).Error; err != nil {
		return nil, fmt.Errorf("failed to create feed: %w", err)
	}

	slog.Info("feed created", "user_id", userID, "pet_id", pet.ID, "feed_id", feed.ID, "action", "create_feed")
	return &FeedResponse{Feed: feed, PetName: pet.Name, PetAvatarURL: pet.AvatarURL}, nil
}

// ListPublic pages through public feeds of every user, newest first.
func (s *FeedService) ListPublic(ctx context.Context, page, size int) (*FeedListResponse, error) {
	return s.list(ctx, page, size, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_public = ?", true)
	})
}

// ListMine pages through the caller's feeds, private ones included.
func (s *FeedService) ListMine(ctx context.Context, userID uint, page, size int) (*FeedListResponse, error) {
	return s.list(ctx, page, size, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

func (s *FeedService) list(ctx context.Context, page, size int, scope func(*gorm.DB) *gorm.DB) (*FeedListResponse, error) {
	page, size = dto.ClampPage(page, size)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Feed{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Feed
	if err := db.Scopes(scope).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	feeds, err := s.withPets(db, rows)
	if err != nil {
		return nil, err
	}
	return &FeedListResponse{
		Feeds:   feeds,
		Total:   total,
		Page:    page,
		Size:    size,
		HasNext: int64(page*size) < total,
	}, nil
}

// withPets attaches pet display fields, soft-deleted pets included.
func (s *FeedService) withPets(db *gorm.DB, rows []models.Feed) ([]FeedResponse, error) {
	out := make([]FeedResponse, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, f := range rows {
		ids = append(ids, f.PetID)
	}
	var petRows []models.Pet
	if err := db.Select("id", "name", "avatar_url").Where("id IN ?", ids).Find(&petRows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Pet, len(petRows))
	for _, p := range petRows {
		byID[p.ID] = p
	}

	for _, f := range rows {
		p := byID[f.PetID]
		out = append(out, FeedResponse{Feed: f, PetName: p.Name, PetAvatarURL: p.AvatarURL})
	}
	return out, nil
}

// findVisible loads a feed that is public or belongs to userID.
func (s *FeedService) findVisible(db *gorm.DB, userID, feedID uint) (*models.Feed, error) {
	var feed models.Feed
	err := db.Where("id = ? AND (is_public = ? OR user_id = ?)", feedID, true, userID).First(&feed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrFeedNotFound
		}
		return nil, err
	}
	return &feed, nil
}

func (s *FeedService) Get(ctx context.Context, userID, feedID uint) (*FeedResponse, error) {
	db := s.db.WithContext(ctx)
	feed, err := s.findVisible(db, userID, feedID)
	if err != nil {
		return nil, err
	}
	out, err := s.withPets(db, []models.Feed{*feed})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *FeedService) Delete(ctx context.Context, userID, feedID uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", feedID, userID).Delete(&models.Feed{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete feed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return services.ErrFeedNotFound
	}
	slog.Info("feed deleted", "user_id", userID, "feed_id", feedID, "action", "delete_feed")
	return nil
}

// Like increments the counter in SQL so concurrent likes are never lost.
func (s *FeedService) Like(ctx context.Context, userID, feedID uint) (*LikeResponse, error) {
	db := s.db.WithContext(ctx)
	feed, err := s.findVisible(db, userID, feedID)
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.Feed{}).Where("id = ?", feed.ID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error; err != nil {
		return nil, fmt.Errorf("failed to like feed: %w", err)
	}

	if err := db.Select("id", "likes_count").First(feed, feed.ID).Error; err != nil {
		return nil, err
	}
	return &LikeResponse{FeedID: feed.ID, LikesCount: feed.LikesCount}, nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
