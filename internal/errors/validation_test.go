package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("item_type", "is not a valid item type", "riddle")

	if err.Field != "item_type" {
		t.Errorf("Expected field to be 'item_type', got '%s'", err.Field)
	}
	if err.Message != "is not a valid item type" {
		t.Errorf("Expected message to be 'is not a valid item type', got '%s'", err.Message)
	}
	if err.Value != "riddle" {
		t.Errorf("Expected value to be 'riddle', got '%v'", err.Value)
	}

	expected := "validation error on field 'item_type': is not a valid item type"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("slug", "is required", nil))
	expected := "validation failed: slug is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("pct", "must be at most 100", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}
