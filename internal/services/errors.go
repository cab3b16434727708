package services

import (
	"errors"

	apperrors "github.com/lingodrills/exercise-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Exercise specific errors
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseNoItems  = errors.New("exercise has no items")

	// Session specific errors
	ErrSessionNotFound = errors.New("exercise session not found")
	ErrItemNotFound    = errors.New("exercise item not found")

	// Builder specific errors
	ErrBuilderNotFound = errors.New("builder not found")

	// Preference specific errors
	ErrUnknownPreference = errors.New("unknown preference key")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrExerciseNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrBuilderNotFound)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return true
	}
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}
