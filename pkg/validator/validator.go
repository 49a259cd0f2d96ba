package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors maps each failing field to one human-readable message.
// Errors on list elements are reported under the list's name.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			if i := strings.IndexByte(field, '['); i >= 0 {
				field = field[:i]
			}
			if _, seen := errors[field]; seen {
				continue
			}
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "min":
				if e.Kind() == reflect.Slice {
					errors[field] = field + " must have at least " + e.Param() + " item(s)"
				} else {
					errors[field] = field + " must be at least " + e.Param() + " characters"
				}
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
