package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, fmt.Errorf("%w: username must be between %d and %d characters", ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	var email *string
	if e := strings.ToLower(strings.TrimSpace(req.Email)); e != "" {
		if !strings.Contains(e, "@") {
			return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
		s.db.Model(&models.User{}).Where("email = ?", e).Count(&count)
		if count > 0 {
			return nil, ErrEmailTaken
		}
		email = &e
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := models.User{
		Username:     username,
		Email:        email,
		Password:     string(hash),
		DisplayName:  displayName,
		IsActive:     true,
		AuthProvider: models.ProviderLocal,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "action", "register")
	return s.generateTokenPair(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", ErrForbidden)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	if req.RefreshToken == "" {
		return nil, ErrInvalidToken
	}
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	// Rotation: a refresh token is single use.
	s.db.Model(&stored).Update("revoked", true)
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", ErrForbidden)
	}

	return s.generateTokenPair(&user)
}

// Logout revokes the given refresh token, or every token of the user when none is given.
func (s *AuthService) Logout(userID uint, req *dto.LogoutRequest) error {
	q := s.db.Model(&models.RefreshToken{}).Where("user_id = ?", userID)
	if req.RefreshToken != "" {
		q = q.Where("token_hash = ?", hashToken(req.RefreshToken))
	}
	return q.Update("revoked", true).Error
}

// DeleteAccount permanently removes the user and everything they own.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return ErrUserNotFound
	}

	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		petIDs := tx.Model(&models.Pet{}).Select("id").Where("owner_id = ?", userID)

		steps := []func() *gorm.DB{
			func() *gorm.DB { return tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}) },
			func() *gorm.DB { return tx.Where("user_id = ? OR pet_id IN (?)", userID, petIDs).Delete(&models.Message{}) },
			func() *gorm.DB { return tx.Where("user_id = ? OR pet_id IN (?)", userID, petIDs).Delete(&models.Feed{}) },
			func() *gorm.DB { return tx.Where("pet_id IN (?)", petIDs).Delete(&models.PetPhoto{}) },
			func() *gorm.DB { return tx.Where("owner_id = ?", userID).Delete(&models.Pet{}) },
			func() *gorm.DB { return tx.Delete(&user) },
		}
		for _, step := range steps {
			if err := step().Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	slog.Info("account deleted", "user_id", userID, "action", "delete_account")
	return nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func validatePassword(pw string) error {
	if len(pw) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	// bcrypt silently truncates past 72 bytes.
	if len(pw) > 72 {
		return fmt.Errorf("%w: password must be at most 72 bytes", ErrInvalidInput)
	}
	return nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

// IsConflict reports whether err is a uniqueness violation surfaced to clients as 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken)
}
