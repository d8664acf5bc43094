package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/campushub/campushub/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateEntity checks an entity against its schema tags. Validation runs
// once, at the adapter boundary, instead of being re-derived per form
// component. Failures surface as apperrors.ErrValidation before any network
// or storage call fires.
func ValidateEntity(entity interface{}) error {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperrors.New(apperrors.ErrValidation, "entity is not validatable")
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		return apperrors.NewValidationError(field,
			fmt.Sprintf("field %q failed on the %q rule", field, fe.Tag()))
	}

	return apperrors.New(apperrors.ErrValidation, err.Error())
}
