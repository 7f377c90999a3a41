// Package validation applies the field rules for post and comment input and
// reports every violation in one list.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "bulletin/app/errors"

	"github.com/go-playground/validator/v10"
)

// PasswordCharset lists the characters a password may contain besides
// letters and digits.
const PasswordCharset = "!@#$%^+-="

var passwordPattern = regexp.MustCompile(`^[0-9a-zA-Z!@#$%^+\-=]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("boardpassword", func(fl validator.FieldLevel) bool {
		return passwordPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Messages validates input and returns one human-readable message per
// violated field, in field order. A nil result means the input is valid.
func Messages(input any) []string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !apperrors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, message(fe))
	}
	return messages
}

// Check validates input and returns a VALIDATION_ERROR carrying every
// message, or nil.
func Check(input any) error {
	if messages := Messages(input); len(messages) > 0 {
		return apperrors.Validation(messages)
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "boardpassword":
		return fmt.Sprintf("%s may only contain letters, digits and %s", fe.Field(), PasswordCharset)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
