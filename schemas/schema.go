package schemas

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single validation violation, addressed by the offending
// field's json path (e.g. "images[0].url").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their json names so violations match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// year4: a positive integer that serializes to exactly 4 digits.
	v.RegisterValidation("year4", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year > 0 && len(strconv.FormatInt(year, 10)) == 4
	})

	return v
}

// Validate checks a request struct against its declared rules and returns
// every violation, in struct field order. A nil result means the input is
// valid.
func Validate(input interface{}) []FieldError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: "malformed input"}}
	}

	violations := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return violations
}

// fieldPath strips the root struct name from the error namespace, leaving
// the json path relative to the request body.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "year4":
		return fmt.Sprintf("%s must be a 4-digit year", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
