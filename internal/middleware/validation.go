package middleware

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/quickmed-api/internal/model"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

// ValidationConfig holds the custom binding tags and the message format per
// tag. Formats take the field name as their only argument.
type ValidationConfig struct {
	CustomValidators map[string]validator.Func
	Messages         map[string]string
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		CustomValidators: map[string]validator.Func{
			"hhmm": func(fl validator.FieldLevel) bool {
				return model.ValidTime(fl.Field().String())
			},
		},
		Messages: map[string]string{
			"required": "%s is required",
			"email":    "%s must be a valid email address",
			"min":      "%s is too short",
			"max":      "%s is too long",
			"gt":       "%s must be a positive number",
			"gte":      "%s is too small",
			"lte":      "%s is too large",
			"oneof":    "%s has an unsupported value",
			"datetime": "%s must be a date in YYYY-MM-DD format",
			"hhmm":     "%s must be a time in HH:MM format",
		},
	}
}

// RegisterValidators installs the custom tags on gin's validator and makes
// field errors report json names.
func RegisterValidators(config ValidationConfig) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	for tag, fn := range config.CustomValidators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q: %w", tag, err)
		}
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return nil
}

func fieldErrors(errs validator.ValidationErrors, messages map[string]string) []apperrors.FieldError {
	out := make([]apperrors.FieldError, 0, len(errs))
	for _, e := range errs {
		msg := e.Error()
		if format, ok := messages[e.Tag()]; ok {
			msg = fmt.Sprintf(format, e.Field())
		}
		out = append(out, apperrors.FieldError{Field: e.Field(), Message: msg})
	}
	return out
}
