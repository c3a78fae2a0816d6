package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// bcryptMaxBytes is the longest password bcrypt will hash.
const bcryptMaxBytes = 72

var (
	// ErrValidation wraps struct validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps JSON and query decoding failures.
	ErrBinding = errors.New("binding failed")
)

// Validator returns the request validator. Field errors are keyed by JSON
// name, and the quoteboard rules notempty, bcryptmax and quotestatus are
// registered alongside the built-in tags.
var Validator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	for tag, fn := range map[string]validator.Func{
		"notempty":    func(fl validator.FieldLevel) bool { return strings.TrimSpace(fl.Field().String()) != "" },
		"bcryptmax":   func(fl validator.FieldLevel) bool { return len(fl.Field().String()) <= bcryptMaxBytes },
		"quotestatus": isQuoteStatus,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %s validation: %v", tag, err))
		}
	}

	return v
})

// isQuoteStatus accepts a moderation state in any letter case.
func isQuoteStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseQuoteStatus(fl.Field().String())
	return err == nil
}

// Validate runs the struct tags of v.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// IsValidationError reports whether err carries field-level failures.
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

// ValidationErrors maps each failing JSON field to a client-facing message.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out[fe.Field()] = fieldMessage(fe)
		}
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	p := fe.Param()

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notempty":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "bcryptmax":
		return fmt.Sprintf("must be at most %d bytes", bcryptMaxBytes)
	case "quotestatus":
		return "must be one of: PENDING APPROVED REJECTED"
	case "oneof":
		return "must be one of: " + p
	case "excludes":
		return fmt.Sprintf("must not contain %q", p)
	case "min":
		return "must be at least " + p + unit
	case "max":
		return "must be at most " + p + unit
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	default:
		return "failed validation: " + fe.Tag()
	}
}
