package validator

import (
	"errors"
	"reflect"
	"strings"

	"gestaotemplate/internal/apperr"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// fieldValidator checks single coerced values against schema rule strings.
var fieldValidator = playgroundvalidator.New()

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failures come back as an
// apperr validation error keyed by JSON field name.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := apperr.FieldErrors{}
			for _, fe := range validationErrors {
				fields.Add(fe.Field(), message(fe.Field(), fe))
			}
			return apperr.Validation(fields)
		}
		return err
	}
	return nil
}

// Request validation structs

type RegisterRequest struct {
	Nome     string `json:"nome" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Loja     string `json:"loja" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
