package services

import "errors"

// MinPasswordLength is the shortest password the client submits.
const MinPasswordLength = 6

// Validation failures detected before any network call.
var (
	ErrMissingFields       = errors.New("required fields are missing")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrNoFile              = errors.New("no video selected")
	ErrNotVideo            = errors.New("selected file is not a video")
	ErrEmptyTitle          = errors.New("title is required")
	ErrNoOriginalURL       = errors.New("original url missing")
	ErrUnsupportedLanguage = errors.New("unsupported target language")
)

// ErrNoSession is returned when an operation needs a signed-in user.
var ErrNoSession = errors.New("not authenticated")
