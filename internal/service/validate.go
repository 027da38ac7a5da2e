package service

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(FieldName)
	return v
}

// FieldName reports fields by their JSON name, so "DueDate" reads "dueDate".
func FieldName(f reflect.StructField) string {
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	r := []rune(f.Name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// check validates s and returns the first failure as a *ValidationError.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if ve, ok := FromValidator(err); ok {
		return ve
	}
	return err
}

// FromValidator converts the first field failure reported by a
// go-playground validator (ours or gin's binding) into a *ValidationError.
func FromValidator(err error) (*ValidationError, bool) {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return nil, false
	}
	fe := fields[0]
	return &ValidationError{Field: fe.Field(), Message: describe(fe)}, true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Param() == "1" {
			return "is required"
		}
		return "must be at least " + fe.Param() + " characters"
	case "gte":
		return "must not be negative"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}
