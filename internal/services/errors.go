package services

import "errors"

// Sentinel errors shared by every feature. Callers wrap them with
// fmt.Errorf("%w: ...") and handlers map them to status codes with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPetNotFound      = errors.New("pet not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrFeedNotFound     = errors.New("feed not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUnsupportedMedia = errors.New("unsupported file type")
	ErrFileTooLarge     = errors.New("file too large")
	ErrContentRejected  = errors.New("content rejected")
	ErrForbidden        = errors.New("forbidden")

	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)
