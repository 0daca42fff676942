package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/palettes"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	pluginNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("colour", func(fl validator.FieldLevel) bool {
			_, ok := colour.ParseToOKLCH(fl.Field().String())
			return ok
		})

		_ = v.RegisterValidation("step_ref", func(fl validator.FieldLevel) bool {
			_, ok := StepID(fl.Field().String())
			return ok
		})

		_ = v.RegisterValidation("colour_or_step", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if _, ok := StepID(s); ok {
				return true
			}
			_, ok := colour.ParseToOKLCH(s)
			return ok
		})

		_ = v.RegisterValidation("template_id", func(fl validator.FieldLevel) bool {
			_, ok := palettes.Get(fl.Field().String())
			return ok
		})

		_ = v.RegisterValidation("plugin_name", func(fl validator.FieldLevel) bool {
			return pluginNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks cfg against its struct rules.
func Validate(cfg *Config) error {
	return convertValidationError(validatorInstance().Struct(cfg))
}

// convertValidationError reports the first failing field by its file key.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return NewValidationError(field, msg, err)
	}

	return NewValidationError("config", err.Error(), err)
}

// fieldName turns Config.Gradients[hero].Type into gradients[hero].type.
func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToLower(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, ".")
}
