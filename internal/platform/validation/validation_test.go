package validation_test

import (
	"errors"
	"strings"
	"testing"

	apperrors "aidref/internal/platform/errors"
	"aidref/internal/platform/validation"
)

type sample struct {
	Name  string   `validate:"required"`
	Items []string `validate:"dive,required"`
}

func TestStructReportsFieldMessages(t *testing.T) {
	t.Parallel()
	err := validation.Struct(sample{Items: []string{"ok", ""}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), "sample.Name is required") {
		t.Fatalf("missing name message: %v", err)
	}
	if !strings.Contains(err.Error(), "sample.Items[1] is required") {
		t.Fatalf("missing item message: %v", err)
	}
}

func TestStructAcceptsValid(t *testing.T) {
	t.Parallel()
	if err := validation.Struct(sample{Name: "vélo", Items: []string{"a"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type blankable struct {
	Name  string   `validate:"notblank"`
	Items []string `validate:"dive,notblank"`
}

func TestStructRejectsWhitespaceOnlyValues(t *testing.T) {
	t.Parallel()
	err := validation.Struct(blankable{Name: "   ", Items: []string{"vtt", "\t"}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), "blankable.Name is required") || !strings.Contains(err.Error(), "blankable.Items[1] is required") {
		t.Fatalf("unexpected messages: %v", err)
	}
	if err := validation.Struct(blankable{Name: " vélo ", Items: []string{"vtt"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
