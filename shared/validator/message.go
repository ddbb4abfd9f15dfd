package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"max":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"datetime": "{field} must be a date formatted as {param}",
	"nefield":  "{field} must differ from {param}",

	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

func describe(fieldErr val.FieldError) string {
	tmpl, ok := templates[fieldErr.Tag()]
	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl)
}

// message lists every failing field in struct order.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, len(fieldErrs))
	for idx, fieldErr := range fieldErrs {
		parts[idx] = describe(fieldErr)
	}

	return strings.Join(parts, "; ")
}
