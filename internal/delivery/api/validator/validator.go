// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	domainerrors "saasadmin/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New returns a validator that reports JSON field names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return &CustomValidator{validate: v}
}

// Validate checks the struct tags of i and maps failures to VALIDATION_FAILED.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.WithStack(err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field()+" "+describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(fields, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() != reflect.String {
			return "must be at least " + fe.Param()
		}

		return "must be at least " + fe.Param() + " characters long"
	case "max":
		if fe.Kind() != reflect.String {
			return "must be at most " + fe.Param()
		}

		return "must be at most " + fe.Param() + " characters long"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "slug":
		return "may only contain lowercase letters, digits and hyphens"
	default:
		return "is invalid"
	}
}
