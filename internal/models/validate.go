package models

import (
	"github.com/go-playground/validator/v10"

	"filmorate-service/internal/apperr"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// checkStruct runs tag-based validation and converts the first failure
// into a domain validation error.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return apperr.Validation("field %s failed on the %s constraint", fe.Field(), fe.Tag())
	}
	return apperr.Validation("%s", err.Error())
}
