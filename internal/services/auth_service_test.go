package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}
	return NewAuthService(db, cfg), db
}

func TestRegister_IssuesTokensWithNumericSubject(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{Username: "alice", Password: "secret1", Email: "Alice@Example.com"})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.User.Username)
	require.NotNil(t, resp.User.Email)
	assert.Equal(t, "alice@example.com", *resp.User.Email)
	assert.Equal(t, "alice", resp.User.DisplayName)
	assert.NotEmpty(t, resp.RefreshToken)

	tok, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "1", claims["sub"])
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{Username: "ab", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(&dto.RegisterRequest{Username: "alice", Password: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(&dto.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(&dto.RegisterRequest{Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.True(t, IsConflict(err))
}

func TestLoginAndRefresh_RotatesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(&dto.RegisterRequest{Username: "bob", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := svc.Login(&dto.LoginRequest{Username: "bob", Password: "hunter22"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_RejectsDeactivatedUser(t *testing.T) {
	svc, db := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Username: "carol", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false).Error)

	_, err = svc.Login(&dto.LoginRequest{Username: "carol", Password: "secret1"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteAccount_CascadesOwnedRows(t *testing.T) {
	svc, db := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Username: "dave", Password: "secret1"})
	require.NoError(t, err)
	other := testutil.CreateUser(t, db, "erin")

	pet := models.Pet{OwnerID: resp.User.ID, Name: "Rex", Breed: "Beagle", Level: 1, IsActive: true}
	require.NoError(t, db.Create(&pet).Error)
	otherPet := models.Pet{OwnerID: other.ID, Name: "Tom", Breed: "Tabby", Level: 1, IsActive: true}
	require.NoError(t, db.Create(&otherPet).Error)

	require.NoError(t, db.Create(&models.PetPhoto{PetID: pet.ID, URL: "/uploads/a.png"}).Error)
	require.NoError(t, db.Create(&models.Feed{PetID: pet.ID, UserID: resp.User.ID, Content: "hi", IsPublic: true}).Error)
	require.NoError(t, db.Create(&models.Message{ConversationID: "x", UserID: resp.User.ID, PetID: pet.ID, MessageType: models.MessageUser, Content: "hello"}).Error)
	require.NoError(t, db.Create(&models.Feed{PetID: otherPet.ID, UserID: other.ID, Content: "keep", IsPublic: true}).Error)

	assert.ErrorIs(t, svc.DeleteAccount(resp.User.ID, "nope"), ErrInvalidCredentials)
	require.NoError(t, svc.DeleteAccount(resp.User.ID, "secret1"))

	for _, m := range []interface{}{&models.Pet{}, &models.PetPhoto{}, &models.Feed{}, &models.Message{}, &models.RefreshToken{}} {
		var n int64
		db.Model(m).Count(&n)
		switch m.(type) {
		case *models.Pet, *models.Feed:
			assert.Equal(t, int64(1), n, "%T", m)
		default:
			assert.Zero(t, n, "%T", m)
		}
	}

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(1), users)
}
