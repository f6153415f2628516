// Package request binds and validates inbound HTTP payloads.
package request

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

// Validator adapts go-playground/validator to echo.Validator. Field names in
// errors follow the json tags of the payload.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the echo validator used by every JSON endpoint.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks payload tags and returns an invalid_input AppError with one
// detail per failing field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errorbank.InvalidInput(err.Error(), errorbank.WithCause(err))
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fieldPath(fe)] = fe.Tag()
	}
	return errorbank.InvalidInput(describe(fieldErrs[0]), errorbank.WithDetails(details))
}

// Bind decodes the request body into dest and validates it.
func Bind(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		return errorbank.InvalidInput("invalid payload", errorbank.WithCause(err))
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(dest); err != nil {
		var appErr *errorbank.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return errorbank.InvalidInput(err.Error(), errorbank.WithCause(err))
	}
	return nil
}

// PathID parses a positive integer path parameter.
func PathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errorbank.InvalidInput(fmt.Sprintf("invalid %s", name),
			errorbank.WithDetail(name, raw), errorbank.WithCause(err))
	}
	return id, nil
}

// fieldPath drops the root struct name so nested fields read menu_items[0].price.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must use the %s layout", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
