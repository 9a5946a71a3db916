package events

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a rejected event payload. Field is empty for
// payload-wide problems.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// FilterError reports a rejected listing filter.
type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// asValidationError converts a validator/v10 result into the package error
// type, keeping only the first failed field. Non-validator errors pass
// through unchanged.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return ValidationError{
			Field:   fieldName(first),
			Message: fieldMessage(first),
		}
	}
	return err
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "EventType":
		return "eventType"
	case "Thumbnail":
		return "thumbnail"
	case "Location":
		return "location"
	case "EventDate":
		return "eventDate"
	case "Email":
		return "email"
	default:
		return fe.Field()
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
