package utils

import (
	"errors"
	"testing"
)

func TestSanitizeValidationErrorNil(t *testing.T) {
	if got := SanitizeValidationError(nil); got != "" {
		t.Errorf("expected empty string for nil error, got %q", got)
	}
}

func TestSanitizeValidationErrorGeneric(t *testing.T) {
	got := SanitizeValidationError(errors.New("json: cannot unmarshal string into Go struct field"))
	if got != "Invalid request body" {
		t.Errorf("expected generic message, got %q", got)
	}
}
