package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message renders one binding failure as a human-readable sentence.
func Message(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s is below the minimum length or value", field)
	case "max":
		return fmt.Sprintf("%s exceeds the maximum length or value", field)
	case "len":
		return fmt.Sprintf("%s has the wrong length", field)
	case "gte":
		return fmt.Sprintf("%s is too small", field)
	case "lte":
		return fmt.Sprintf("%s is too large", field)
	case "oneof":
		return fmt.Sprintf("%s is not one of the allowed values", field)
	case "e164":
		return fmt.Sprintf("%s must be an international phone number", field)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// BindingError flattens a gin binding error into one message usable as
// the response `error` string.
func BindingError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, e := range verrs {
			messages = append(messages, Message(e.Field(), e.Tag()))
		}
		return strings.Join(messages, "; ")
	}
	return "invalid request body"
}
