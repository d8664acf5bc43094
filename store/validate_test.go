package store

import (
	"errors"
	"testing"

	"github.com/campushub/campushub/apperrors"
)

type form struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Age   int    `validate:"gte=0"`
}

func TestValidateEntityPasses(t *testing.T) {
	err := ValidateEntity(&form{Name: "Anna", Email: "anna@uni.edu", Age: 21})
	if err != nil {
		t.Fatalf("expected valid entity, got %v", err)
	}
}

func TestValidateEntityRequiredField(t *testing.T) {
	err := ValidateEntity(&form{Email: "anna@uni.edu"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.AppError, got %T", err)
	}
	if appErr.Field != "name" {
		t.Errorf("expected lowercased field name %q, got %q", "name", appErr.Field)
	}
}

func TestValidateEntityEmailFormat(t *testing.T) {
	err := ValidateEntity(&form{Name: "Anna", Email: "not-an-email"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidateEntityNonStruct(t *testing.T) {
	err := ValidateEntity("not a struct")
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-struct input, got %v", err)
	}
}
