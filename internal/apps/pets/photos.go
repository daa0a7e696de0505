package pets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *PetService) ListPhotos(ctx context.Context, ownerID, petID uint) ([]models.PetPhoto, error) {
	db := s.db.WithContext(ctx)
	pet, err := FindActivePet(db, ownerID, petID)
	if err != nil {
		return nil, err
	}
	return listPhotos(db, pet.ID)
}

// AddPhoto records a photo that is already hosted at req.URL.
func (s *PetService) AddPhoto(ctx context.Context, ownerID, petID uint, req AddPhotoRequest) (*models.PetPhoto, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.ThumbnailURL = strings.TrimSpace(req.ThumbnailURL)
	req.Description = strings.TrimSpace(req.Description)
	if err := services.Validate(&req); err != nil {
		return nil, err
	}

	photo := models.PetPhoto{
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		Description:  req.Description,
		FileSize:     req.FileSize,
		Width:        req.Width,
		Height:       req.Height,
		IsAvatar:     req.IsAvatar,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pet, err := lockActivePet(tx, ownerID, petID)
		if err != nil {
			return err
		}
		return insertPhoto(tx, pet, &photo)
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// UploadPhoto validates and stores an image file, then records it like AddPhoto.
// The stored object is removed again when the database write fails.
func (s *PetService) UploadPhoto(ctx context.Context, ownerID, petID uint, up Upload) (*models.PetPhoto, error) {
	db := s.db.WithContext(ctx)
	if _, err := FindActivePet(db, ownerID, petID); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(up.Description)
	if len([]rune(description)) > 200 {
		return nil, fmt.Errorf("%w: description must be at most 200 characters", services.ErrInvalidInput)
	}

	info, err := inspectImage(up.ContentType, up.Data, s.maxUploadSize)
	if err == nil {
		err = checkFilename(up.Filename)
	}
	if err != nil {
		metrics.RecordUpload("rejected")
		slog.Info("photo upload rejected", "user_id", ownerID, "pet_id", petID, "filename", up.Filename, "error", err, "action", "upload_photo")
		return nil, err
	}

	key := fmt.Sprintf("pets/%d/%s%s", petID, uuid.NewString(), info.Ext)
	url, err := s.store.Save(ctx, key, info.ContentType, bytes.NewReader(up.Data))
	if err != nil {
		metrics.RecordUpload("error")
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	size := int64(len(up.Data))
	width, height := info.Width, info.Height
	photo := models.PetPhoto{
		URL:         url,
		Description: description,
		FileSize:    &size,
		Width:       &width,
		Height:      &height,
		IsAvatar:    up.IsAvatar,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		pet, err := lockActivePet(tx, ownerID, petID)
		if err != nil {
			return err
		}
		return insertPhoto(tx, pet, &photo)
	})
	if err != nil {
		metrics.RecordUpload("error")
		if derr := s.store.Delete(context.WithoutCancel(ctx), key); derr != nil {
			slog.Warn("failed to remove orphaned upload", "key", key, "error", derr)
		}
		return nil, err
	}

	metrics.RecordUpload("ok")
	slog.Info("photo uploaded", "user_id", ownerID, "pet_id", petID, "filename", up.Filename, "bytes", size, "store", s.store.Name(), "action", "upload_photo")
	return &photo, nil
}

// DeletePhoto removes a photo. Deleting the avatar clears the pet's avatar_url
// without promoting another photo. The stored file is removed after commit.
func (s *PetService) DeletePhoto(ctx context.Context, ownerID, photoID uint) error {
	db := s.db.WithContext(ctx)
	var deleted models.PetPhoto
	err := db.Transaction(func(tx *gorm.DB) error {
		photo, err := findOwnedPhoto(tx, ownerID, photoID)
		if err != nil {
			return err
		}
		pet, err := lockActivePet(tx, ownerID, photo.PetID)
		if err != nil {
			return err
		}
		// Re-read under the pet lock: a concurrent avatar change may have flipped is_avatar.
		if err := tx.First(&deleted, photo.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrPhotoNotFound
			}
			return err
		}
		if err := tx.Delete(&deleted).Error; err != nil {
			return err
		}
		if deleted.IsAvatar {
			return tx.Model(&models.Pet{}).Where("id = ?", pet.ID).Update("avatar_url", nil).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	if key, ok := s.store.KeyFromURL(deleted.URL); ok {
		if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
			slog.Warn("failed to remove photo file", "key", key, "photo_id", photoID, "error", err)
		}
	}
	return nil
}
