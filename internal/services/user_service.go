package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetActive loads a user visible to other users; deactivated accounts are hidden.
func (s *UserService) GetActive(id uint) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req *dto.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if utf8.RuneCountInString(name) > 100 {
			return nil, fmt.Errorf("%w: display_name must be at most 100 characters", ErrInvalidInput)
		}
		updates["display_name"] = name
	}
	if req.AvatarURL != nil {
		if len(*req.AvatarURL) > 255 {
			return nil, fmt.Errorf("%w: avatar_url must be at most 255 characters", ErrInvalidInput)
		}
		updates["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			updates["email"] = nil
		} else {
			if !strings.Contains(email, "@") {
				return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
			}
			var count int64
			s.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count)
			if count > 0 {
				return nil, ErrEmailTaken
			}
			updates["email"] = email
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.Get(userID)
}

// Deactivate soft-deletes the account and revokes its refresh tokens.
func (s *UserService) Deactivate(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Update("revoked", true).Error
	})
}

func (s *UserService) ChangePassword(userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.Model(user).Update("password", string(hash)).Error
}

// List pages through all accounts, newest first.
func (s *UserService) List(page, size int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&users).Error
	return users, total, err
}
