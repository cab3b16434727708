package utils

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/lingodrills/exercise-service/internal/errors"
	"github.com/lingodrills/exercise-service/internal/models"
)

// Validator wraps go-playground/validator with the service's custom rules.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	RegisterCustomValidators(v)
	return &Validator{validate: v}
}

// Validate checks a struct against its validate tags, converting failures
// to the shared validation error type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if verrs := apperrors.ToValidationErrors(err); len(verrs) > 0 {
			return verrs
		}
		return err
	}
	return nil
}

// Custom validation functions

func ValidateExerciseKind(fl validator.FieldLevel) bool {
	validKinds := []models.ExerciseKind{
		models.KindQuiz,
		models.KindMatching,
		models.KindFillBlank,
		models.KindSentenceOrder,
	}

	value := fl.Field().String()
	for _, kind := range validKinds {
		if string(kind) == value {
			return true
		}
	}
	return false
}

func ValidateItemType(fl validator.FieldLevel) bool {
	validTypes := []models.ItemType{
		models.ItemMultipleChoice,
		models.ItemDragMatch,
		models.ItemFillBlank,
		models.ItemSelect,
		models.ItemFreeText,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func ValidateFluencyLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "basic", "intermediate", "advanced":
		return true
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exercise_kind", ValidateExerciseKind)
	validate.RegisterValidation("item_type", ValidateItemType)
	validate.RegisterValidation("fluency_level", ValidateFluencyLevel)
}
