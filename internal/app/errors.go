package app

import "errors"

var (
	ErrEmailAndPasswordRequired = errors.New("email and password required")
	ErrEmailAlreadyExists       = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid credentials")

	// ErrInvalidURL means no video id could be extracted from the input.
	ErrInvalidURL = errors.New("not a recognizable YouTube URL or video id")

	ErrVideoNotFound  = errors.New("video not found")
	ErrVideoForbidden = errors.New("video forbidden")

	ErrProfileNotFound = errors.New("profile not found")

	ErrPromptConfigNotFound = errors.New("prompt config not found")
	ErrPromptConfigInUse    = errors.New("active prompt config cannot be deleted")

	ErrUnknownAction = errors.New("unknown quick action")

	ErrMessageRequired     = errors.New("message required")
	ErrDescriptionRequired = errors.New("description required")
)
