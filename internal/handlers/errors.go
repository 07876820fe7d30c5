package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"teslo/internal/problem"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator with the custom tags the inputs rely on.
func newValidator() *validator.Validate {
	v := validator.New()
	// Register JSON field names so errors name the fields clients sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("password", validPassword)
	return v
}

// validPassword requires an uppercase letter, a lowercase letter and a digit
// or symbol.
func validPassword(fl validator.FieldLevel) bool {
	var upper, lower, other bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			other = true
		}
	}
	return upper && lower && other
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", e.Field())
	case "email":
		return fmt.Sprintf("%s must be an email", e.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "password":
		return "The password must have a Uppercase, lowercase letter and a number"
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}

// validate checks input and writes a 400 problem when it is rejected. The
// returned bool is false when a response has been written.
func validate(c *fiber.Ctx, v *validator.Validate, input interface{}) (bool, error) {
	err := v.Struct(input)
	if err == nil {
		return true, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, problem.Write(c, fiber.StatusBadRequest, err.Error())
	}
	fields := make([]problem.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, problem.FieldError{Field: e.Field(), Tag: e.Tag(), Message: fieldMessage(e)})
	}
	return false, problem.WriteValidation(c, "Validation failed", fields)
}

// badBody writes the problem for a request body that could not be parsed.
func badBody(c *fiber.Ctx, err error) error {
	return problem.Write(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
}

// handleError renders a service error as a problem document.
func handleError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		return problem.Write(c, fiber.StatusInternalServerError, "Unexpected error, check server logs")
	}

	status := fiber.StatusInternalServerError
	switch svcErr.Kind {
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindConflict:
		status = fiber.StatusBadRequest
	case services.KindUnauthorized:
		status = fiber.StatusUnauthorized
	}
	return problem.Write(c, status, svcErr.Message)
}
