package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile_PartialPatch(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db)
	u := testutil.CreateUser(t, db, "frank")
	require.NoError(t, db.Model(u).Update("avatar_url", "a.png").Error)

	got, err := svc.UpdateProfile(u.ID, &dto.UpdateProfileRequest{DisplayName: strPtr("  Frankie ")})
	require.NoError(t, err)
	assert.Equal(t, "Frankie", got.DisplayName)
	assert.Equal(t, "a.png", got.AvatarURL)

	other := testutil.CreateUser(t, db, "gina")
	_, err = svc.UpdateProfile(other.ID, &dto.UpdateProfileRequest{Email: strPtr("g@x.io")})
	require.NoError(t, err)
	_, err = svc.UpdateProfile(u.ID, &dto.UpdateProfileRequest{Email: strPtr("G@X.io")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeactivate_HidesUserAndRevokesTokens(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db)
	u := testutil.CreateUser(t, db, "hank")
	require.NoError(t, db.Create(&models.RefreshToken{UserID: u.ID, TokenHash: "h1"}).Error)

	require.NoError(t, svc.Deactivate(u.ID))

	_, err := svc.GetActive(u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var tok models.RefreshToken
	require.NoError(t, db.First(&tok, "token_hash = ?", "h1").Error)
	assert.True(t, tok.Revoked)

	assert.ErrorIs(t, svc.Deactivate(9999), ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	db := testutil.NewDB(t)
	auth := NewAuthService(db, testConfig())
	resp, err := auth.Register(&dto.RegisterRequest{Username: "ivy", Password: "secret1"})
	require.NoError(t, err)
	svc := NewUserService(db)

	err = svc.ChangePassword(resp.User.ID, &dto.ChangePasswordRequest{OldPassword: "bad", NewPassword: "secret2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(resp.User.ID, &dto.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.ChangePassword(resp.User.ID, &dto.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"}))
	_, err = auth.Login(&dto.LoginRequest{Username: "ivy", Password: "secret2"})
	assert.NoError(t, err)
}

func TestList_Paginates(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db)
	for _, name := range []string{"u1", "u2", "u3"} {
		testutil.CreateUser(t, db, name)
	}

	users, total, err := svc.List(2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 1)
}
